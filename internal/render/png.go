package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/olivier-w/bounce/internal/ball"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

var (
	fillColor   = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	strokeColor = color.RGBA{A: 255}
)

// disposedOpacity matches the .disposing rule in the SVG style block.
const disposedOpacity = 0.4

// Image rasterizes the scene onto a transparent canvas scale times the
// container size.
func Image(s Scene, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := ball.ContainerWidth*scale, ball.ContainerHeight*scale
	layer := image.NewRGBA(image.Rect(0, 0, w, h))

	b := s.Ball
	k := float32(scale)
	half := float32(ball.StrokeWidth) / 2
	z := vector.NewRasterizer(w, h)
	fillEllipse(z, layer, float32(b.CenterX)*k, float32(b.CenterY)*k,
		(float32(b.RadiusX)+half)*k, (float32(b.RadiusY)+half)*k, strokeColor)
	z.Reset(w, h)
	fillEllipse(z, layer, float32(b.CenterX)*k, float32(b.CenterY)*k,
		(float32(b.RadiusX)-half)*k, (float32(b.RadiusY)-half)*k, fillColor)

	if !s.Disposing {
		return layer
	}
	dst := image.NewRGBA(layer.Bounds())
	mask := image.NewUniform(color.Alpha{A: uint8(disposedOpacity * 255)})
	draw.DrawMask(dst, dst.Bounds(), layer, image.Point{}, mask, image.Point{}, draw.Over)
	return dst
}

func fillEllipse(z *vector.Rasterizer, dst draw.Image, cx, cy, rx, ry float32, c color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	kx, ky := kappa*rx, kappa*ry
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// SavePNG writes the scene to path as a PNG.
func SavePNG(path string, s Scene, scale int) error {
	return imaging.Save(Image(s, scale), path)
}
