package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatCoord formats a coordinate with at most two decimals and no
// trailing zeros: 30, 177.2, 16.67.
func FormatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
