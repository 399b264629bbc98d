package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// SupportedExts lists the sound file extensions a cue can be loaded from.
var SupportedExts = []string{".wav", ".mp3", ".ogg", ".flac"}

// IsSupportedExt reports whether ext (with dot, any case) can be decoded.
func IsSupportedExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExts {
		if e == ext {
			return true
		}
	}
	return false
}

// pcm16 is interleaved signed 16-bit audio at its source rate.
type pcm16 struct {
	samples    []int16
	sampleRate int
	channels   int
}

// decodeFile decodes a whole sound file into 16-bit stereo PCM at the
// device sample rate.
func decodeFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := decodeSource(f)
	if err != nil {
		return nil, err
	}
	return src.toOutput()
}

// decodeSource detects format by file extension.
func decodeSource(f *os.File) (pcm16, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	case ".flac":
		return decodeFLAC(f)
	case ".ogg":
		return decodeOGG(f)
	default:
		return pcm16{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

func decodeWAV(f *os.File) (pcm16, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return pcm16{}, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm16{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	return pcm16{
		samples:    intBufferTo16(buf, int(dec.BitDepth)),
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
	}, nil
}

func intBufferTo16(buf *audio.IntBuffer, depth int) []int16 {
	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case depth == 8:
			// 8-bit WAV is unsigned
			v = (v - 128) << 8
		case depth > 16:
			v >>= depth - 16
		}
		out[i] = clamp16(v)
	}
	return out
}

func decodeMP3(f *os.File) (pcm16, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return pcm16{}, fmt.Errorf("decoding MP3: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return pcm16{}, fmt.Errorf("decoding MP3: %w", err)
	}
	// go-mp3 always produces 16-bit LE stereo.
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return pcm16{samples: samples, sampleRate: dec.SampleRate(), channels: 2}, nil
}

func decodeFLAC(f *os.File) (pcm16, error) {
	stream, err := flac.New(f)
	if err != nil {
		return pcm16{}, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bps := int(info.BitsPerSample)
	samples := make([]int16, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pcm16{}, fmt.Errorf("decoding FLAC: %w", err)
		}
		n := int(frame.Subframes[0].NSamples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				sample := int(frame.Subframes[ch].Samples[i])
				switch {
				case bps > 16:
					sample >>= (bps - 16)
				case bps < 16:
					sample <<= (16 - bps)
				}
				samples = append(samples, clamp16(sample))
			}
		}
	}
	return pcm16{samples: samples, sampleRate: int(info.SampleRate), channels: channels}, nil
}

func decodeOGG(f *os.File) (pcm16, error) {
	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return pcm16{}, fmt.Errorf("decoding OGG: %w", err)
	}
	samples := make([]int16, len(data))
	for i, s := range data {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		samples[i] = int16(s * 32767)
	}
	return pcm16{samples: samples, sampleRate: format.SampleRate, channels: format.Channels}, nil
}

func clamp16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// toOutput converts to the device format: stereo at sampleRate, 16-bit LE.
// Rates are matched by linear interpolation between neighbouring source
// frames. Mono is duplicated to both channels; channels beyond the first two
// are dropped.
func (p pcm16) toOutput() ([]byte, error) {
	if p.channels < 1 || p.sampleRate <= 0 {
		return nil, fmt.Errorf("invalid stream: %d channels at %d Hz", p.channels, p.sampleRate)
	}
	inFrames := int64(len(p.samples) / p.channels)
	if inFrames == 0 {
		return nil, fmt.Errorf("no audio data")
	}

	outFrames := inFrames * sampleRate / int64(p.sampleRate)
	if outFrames == 0 {
		outFrames = 1
	}
	out := make([]byte, outFrames*frameSize)
	var srcPosNum int64
	for i := range outFrames {
		src := srcPosNum / sampleRate
		if src >= inFrames {
			src = inFrames - 1
		}
		next := src + 1
		if next >= inFrames {
			next = src
		}
		fracNum := srcPosNum % sampleRate

		l0, r0 := p.frameAt(src)
		l1, r1 := p.frameAt(next)
		binary.LittleEndian.PutUint16(out[i*frameSize:], uint16(interpolateSample(l0, l1, fracNum)))
		binary.LittleEndian.PutUint16(out[i*frameSize+2:], uint16(interpolateSample(r0, r1, fracNum)))
		srcPosNum += int64(p.sampleRate)
	}
	return out, nil
}

func (p pcm16) frameAt(frame int64) (int16, int16) {
	off := int(frame) * p.channels
	l := p.samples[off]
	if p.channels == 1 {
		return l, l
	}
	return l, p.samples[off+1]
}

// interpolateSample blends a toward b by fracNum/sampleRate, rounding to nearest.
func interpolateSample(a, b int16, fracNum int64) int16 {
	if fracNum == 0 || a == b {
		return a
	}
	diff := int64(int32(b) - int32(a))
	return int16(int64(a) + (diff*fracNum+sampleRate/2)/sampleRate)
}
