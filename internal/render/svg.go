package render

import (
	"fmt"
	"strings"

	"github.com/olivier-w/bounce/internal/ball"
	"github.com/olivier-w/bounce/internal/util"
)

// Scene is everything needed to draw one frame.
type Scene struct {
	Ball      ball.State
	Disposing bool
}

const svgStyle = `ellipse { fill: orange; stroke-width: %dpx; stroke: black; transition: opacity 250ms; }
ellipse.disposing { opacity: 0.4; }`

// SVG renders the scene as a standalone SVG document sized to the container.
func SVG(s Scene) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		ball.ContainerWidth, ball.ContainerHeight, ball.ContainerWidth, ball.ContainerHeight)
	sb.WriteString("\n<style>\n")
	fmt.Fprintf(&sb, svgStyle, ball.StrokeWidth)
	sb.WriteString("\n</style>\n")
	sb.WriteString(Ellipse(s))
	sb.WriteString("\n</svg>\n")
	return sb.String()
}

// Ellipse renders only the ball element.
func Ellipse(s Scene) string {
	class := ""
	if s.Disposing {
		class = ` class="disposing"`
	}
	b := s.Ball
	return fmt.Sprintf(`<ellipse%s cx="%s" cy="%s" rx="%s" ry="%s"/>`, class,
		util.FormatCoord(b.CenterX), util.FormatCoord(b.CenterY),
		util.FormatCoord(b.RadiusX), util.FormatCoord(b.RadiusY))
}
