package player

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes
	frameSize    = channelCount * bitDepth
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Cue plays a short bounce sound. The audio device and the decoded buffer
// are set up at most once, in the background, the first time Prepare is
// called. Until that finishes, or if it fails, Play does nothing.
type Cue struct {
	path   string // empty selects the synthesized thud
	volume float64

	once   sync.Once
	mu     sync.Mutex
	ctx    *oto.Context
	pcm    []byte
	player *oto.Player // keeps the in-flight cue referenced
	err    error
	ready  bool
}

// NewCue returns a cue for the sound file at path, or the built-in thud when
// path is empty.
func NewCue(path string, volume float64) *Cue {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Cue{path: path, volume: volume}
}

// Prepare starts loading the sound. It must be triggered by a user action.
func (c *Cue) Prepare() {
	c.once.Do(func() {
		go c.load()
	})
}

func (c *Cue) load() {
	pcm, err := c.loadPCM()
	var ctx *oto.Context
	if err == nil {
		ctx, err = initOto()
		if err != nil {
			err = fmt.Errorf("opening audio device: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	if err != nil {
		return
	}
	c.ctx = ctx
	c.pcm = pcm
	c.ready = true
}

func (c *Cue) loadPCM() ([]byte, error) {
	if c.path == "" {
		return synthesizeThud(), nil
	}
	pcm, err := decodeFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("loading sound %s: %w", c.path, err)
	}
	return pcm, nil
}

// Play starts the cue from the beginning, cutting off any previous one.
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	if c.player != nil {
		c.player.Pause()
	}
	c.player = c.ctx.NewPlayer(bytes.NewReader(c.pcm))
	c.player.SetVolume(c.volume)
	c.player.Play()
}

// Ready reports whether the sound loaded successfully.
func (c *Cue) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Err returns the setup failure, if any. Playback continues silently.
func (c *Cue) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
