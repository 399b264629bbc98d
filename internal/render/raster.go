package render

import (
	"math"
	"strings"

	"github.com/olivier-w/bounce/internal/ball"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Grid maps container pixels onto a cols×rows block of braille cells.
// Each cell is a 2x4 dot grid; dots are square in container pixels.
type Grid struct {
	Cols, Rows int
	scale      float64 // container pixels per dot
}

// FitGrid returns the largest grid no bigger than cols×rows cells that
// shows the whole container with its aspect ratio preserved.
func FitGrid(cols, rows int) Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	scale := math.Max(
		float64(ball.ContainerWidth)/float64(cols*2),
		float64(ball.ContainerHeight)/float64(rows*4),
	)
	return Grid{
		Cols:  int(math.Ceil(float64(ball.ContainerWidth) / scale / 2)),
		Rows:  int(math.Ceil(float64(ball.ContainerHeight) / scale / 4)),
		scale: scale,
	}
}

// CellAt converts a cell position inside the grid to container pixels, for
// hit-testing clicks. ok is false outside the grid.
func (g Grid) CellAt(col, row int) (x, y float64, ok bool) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return 0, 0, false
	}
	return (float64(col)*2 + 1) * g.scale, (float64(row)*4 + 2) * g.scale, true
}

// Raster draws the ball, stroke included, as braille rows.
func (g Grid) Raster(b ball.State) []string {
	rx := b.RadiusX + ball.StrokeWidth/2
	ry := b.RadiusY + ball.StrokeWidth/2

	inside := func(dotCol, dotRow int) bool {
		if rx <= 0 || ry <= 0 {
			return false
		}
		x := (float64(dotCol) + 0.5) * g.scale
		y := (float64(dotRow) + 0.5) * g.scale
		if x > ball.ContainerWidth || y > ball.ContainerHeight {
			return false
		}
		nx := (x - b.CenterX) / rx
		ny := (y - b.CenterY) / ry
		return nx*nx+ny*ny <= 1
	}

	rows := make([]string, g.Rows)
	for row := range g.Rows {
		var line strings.Builder
		for col := range g.Cols {
			var pattern uint
			for dx := range 2 {
				for dy := range 4 {
					if inside(col*2+dx, row*4+dy) {
						pattern |= 1 << brailleBits[dx][dy]
					}
				}
			}
			line.WriteRune(rune(0x2800 + pattern))
		}
		rows[row] = line.String()
	}
	return rows
}
