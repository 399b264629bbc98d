package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	opaque        = 1.0
	disposedAlpha = 0.4
	fadeFrequency = 12.0 // settles in roughly a quarter second
	fadeDamping   = 1.0
	fadeEpsilon   = 0.005
)

// fade animates the ball's opacity between opaque and the disposing level.
type fade struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newFade() fade {
	return fade{
		spring: harmonica.NewSpring(harmonica.FPS(refreshRate), fadeFrequency, fadeDamping),
		pos:    opaque,
	}
}

func fadeTarget(disposing bool) float64 {
	if disposing {
		return disposedAlpha
	}
	return opaque
}

// step moves one refresh toward target and reports whether it has settled.
func (f *fade) step(target float64) bool {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, target)
	if math.Abs(f.pos-target) < fadeEpsilon && math.Abs(f.vel) < fadeEpsilon {
		f.pos = target
		f.vel = 0
		return true
	}
	return false
}

func (f fade) settled(target float64) bool {
	return f.pos == target && f.vel == 0
}

type colorRGB struct {
	R uint8
	G uint8
	B uint8
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpColor(a, b colorRGB, t float64) colorRGB {
	t = clamp01(t)
	return colorRGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

func (c colorRGB) color() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// ballColor is the fill at the given opacity, blended over the faded tone.
func ballColor(opacity float64) lipgloss.Color {
	return lerpColor(fadedRGB, ballRGB, opacity).color()
}
