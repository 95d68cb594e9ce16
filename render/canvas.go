// Package render rasterizes motion paths, motion objects and easing
// previews into images.
/*
Drawing is done with golang.org/x/image/vector. Strokes are expanded
into fill outlines by honnef.co/go/curve, with round joins and caps.

Rendering is a host concern: nothing in the core packages depends on
render. The gallery renders its cells in parallel; everything else runs
on the caller's goroutine.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"image"
	"image/color"
	"iter"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

// flatness is the stroke and circle tolerance in pixels.
const flatness = 0.1

// canvas couples an RGBA image with a rasterizer of the same size.
type canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

func newCanvas(w, h int, bg color.Color) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &canvas{img: img, ras: vector.NewRasterizer(w, h)}
}

// paint fills the current rasterizer path with col and starts a new path.
func (c *canvas) paint(col color.Color) {
	b := c.img.Bounds()
	c.ras.DrawOp = draw.Over
	c.ras.Draw(c.img, b, image.NewUniform(col), image.Point{})
	c.ras.Reset(b.Dx(), b.Dy())
}

func f32(x float64) float32 {
	return float32(x)
}

// fill adds the elements of a path to the rasterizer and paints them.
func (c *canvas) fill(elems iter.Seq[curve.PathElement], col color.Color) {
	for el := range elems {
		switch el.Kind {
		case curve.MoveToKind:
			c.ras.MoveTo(f32(el.P0.X), f32(el.P0.Y))
		case curve.LineToKind:
			c.ras.LineTo(f32(el.P0.X), f32(el.P0.Y))
		case curve.QuadToKind:
			c.ras.QuadTo(f32(el.P0.X), f32(el.P0.Y), f32(el.P1.X), f32(el.P1.Y))
		case curve.CubicToKind:
			c.ras.CubeTo(f32(el.P0.X), f32(el.P0.Y), f32(el.P1.X), f32(el.P1.Y),
				f32(el.P2.X), f32(el.P2.Y))
		case curve.ClosePathKind:
			c.ras.ClosePath()
		}
	}
	c.paint(col)
}

// stroke fills the outline of a path stroked with round joins and caps.
func (c *canvas) stroke(elems iter.Seq[curve.PathElement], width float64, col color.Color) {
	style := curve.DefaultStroke.WithWidth(width)
	c.fill(curve.StrokePath(elems, style, curve.StrokeOpts{}, flatness), col)
}

// disc fills a circle.
func (c *canvas) disc(center motion.Pair, r float64, col color.Color) {
	c.fill(curve.Circle{Center: motion.CurvePoint(center), Radius: r}.PathElements(flatness), col)
}

// ring strokes a circle outline of the given width.
func (c *canvas) ring(center motion.Pair, r, width float64, col color.Color) {
	c.stroke(curve.Circle{Center: motion.CurvePoint(center), Radius: r}.PathElements(flatness), width, col)
}

// polyline strokes the connected segments through pts.
func (c *canvas) polyline(pts []motion.Pair, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	var p curve.BezPath
	p.MoveTo(motion.CurvePoint(pts[0]))
	for _, q := range pts[1:] {
		p.LineTo(motion.CurvePoint(q))
	}
	c.stroke(p.Elements(), width, col)
}

// box fills the axis-aligned rectangle with corners p and q.
func (c *canvas) box(p, q motion.Pair, col color.Color) {
	c.ras.MoveTo(f32(p.X()), f32(p.Y()))
	c.ras.LineTo(f32(q.X()), f32(p.Y()))
	c.ras.LineTo(f32(q.X()), f32(q.Y()))
	c.ras.LineTo(f32(p.X()), f32(q.Y()))
	c.ras.ClosePath()
	c.paint(col)
}

// label draws s with its baseline starting at p.
func (c *canvas) label(p motion.Pair, s string, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(p.X()), int(p.Y())),
	}
	d.DrawString(s)
}

// labelWidth is the advance of s in pixels.
func labelWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}
