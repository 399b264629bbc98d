package player

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// Built-in bounce cue: a low sine thump with a short burst of noise for
// the slap of the ball on the floor.
const (
	thudDuration  = 120 * time.Millisecond
	thudAttack    = 2 * time.Millisecond
	thudRelease   = 100 * time.Millisecond
	thudStartFreq = 140.0
	thudEndFreq   = 55.0
	slapDuration  = 15 * time.Millisecond
	slapLevel     = 0.35
	thudGain      = 0.8
)

func durationToSamples(d time.Duration) int {
	return int(d.Seconds() * sampleRate)
}

// applyEnvelope applies a linear attack/release envelope in place.
func applyEnvelope(buf []float64, attack, release time.Duration) {
	total := len(buf)
	attackSamples := durationToSamples(attack)
	releaseSamples := durationToSamples(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := range total {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// synthesizeThud renders the built-in cue as 16-bit stereo PCM.
func synthesizeThud() []byte {
	n := durationToSamples(thudDuration)
	buf := make([]float64, n)

	// Pitch sweeps down exponentially from start to end frequency.
	phase := 0.0
	for i := range n {
		t := float64(i) / float64(n)
		freq := thudStartFreq * math.Pow(thudEndFreq/thudStartFreq, t)
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / sampleRate
		if phase >= 1 {
			phase--
		}
	}
	applyEnvelope(buf, thudAttack, thudRelease)

	rng := rand.New(rand.NewSource(1))
	slap := durationToSamples(slapDuration)
	for i := 0; i < slap && i < n; i++ {
		decay := 1 - float64(i)/float64(slap)
		buf[i] += (rng.Float64()*2 - 1) * slapLevel * decay
	}

	out := make([]byte, n*frameSize)
	for i, v := range buf {
		s := clamp16(int(v * thudGain * 32767))
		binary.LittleEndian.PutUint16(out[i*frameSize:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*frameSize+2:], uint16(s))
	}
	return out
}
