package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{65 * time.Second, "1:05"},
		{10*time.Minute + 999*time.Millisecond, "10:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{30, "30"},
		{177.2, "177.2"},
		{16.666, "16.67"},
		{-0.001, "0"},
		{75, "75"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Fatalf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
