package render

import (
	"image"
	"image/color"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/path"
	"github.com/npillmayer/motion/playback"
	"github.com/npillmayer/motion/trajectory"
	"golang.org/x/image/draw"
)

// Geometry of handles and motion objects, in pixels.
const (
	HandleRadius = 8.0
	PenWidth     = 3.0
	ObjectSize   = 40
	guideSamples = 96
)

// PathColor is the pen color of the path guide and the handle outlines.
var PathColor = color.RGBA{0xd7, 0x22, 0xa7, 0xff}

// HandleColors mark the control points by index: start, first control,
// second control, end.
var HandleColors = [4]color.RGBA{
	{0x00, 0x80, 0x00, 0xff}, // dark green
	{0xff, 0x00, 0xff, 0xff}, // magenta
	{0x00, 0x80, 0x80, 0xff}, // dark cyan
	{0x80, 0x80, 0x00, 0xff}, // dark yellow
}

// ObjectColors fill the motion objects that have no surface image.
var ObjectColors = [2]color.RGBA{
	{0x30, 0x30, 0x30, 0xff},
	{0xb0, 0xb0, 0xb0, 0xff},
}

// Frame describes what to draw for one animation frame.
type Frame struct {
	Width, Height int
	Type          motion.PathType
	Points        []motion.Pair
	Samples       []playback.Sample // current sample per moving object
	Background    image.Image       // drawn scaled to the frame; white if nil
	Surfaces      [2]image.Image    // motion object images; plain squares if nil
}

// FrameOf prepares a frame for the current state of a path model.
func FrameOf(m *path.Model, samples []playback.Sample) Frame {
	return Frame{
		Width:   int(m.Frame().Width),
		Height:  int(m.Frame().Height),
		Type:    m.Type(),
		Points:  m.Points(),
		Samples: samples,
	}
}

// Draw renders the frame: background, path guide, control handles and
// motion objects, in that order.
func (fr Frame) Draw() *image.RGBA {
	w, h := max(fr.Width, 1), max(fr.Height, 1)
	c := newCanvas(w, h, color.White)
	if fr.Background != nil {
		draw.CatmullRom.Scale(c.img, c.img.Bounds(), fr.Background, fr.Background.Bounds(), draw.Src, nil)
	}
	if guide := fr.guide(); len(guide) > 1 {
		c.polyline(guide, PenWidth, PathColor)
	}
	fr.handles(c)
	for _, s := range fr.Samples {
		fr.object(c, s)
	}
	return c.img
}

// guide returns the flattened path of a complete point set.
func (fr Frame) guide() []motion.Pair {
	if len(fr.Points) != fr.Type.MaxPoints() {
		return nil
	}
	if fr.Type == motion.Line {
		return fr.Points
	}
	at, ok := trajectory.Sampler(fr.Type, fr.Points)
	if !ok {
		return nil
	}
	pts := make([]motion.Pair, guideSamples+1)
	for i := range pts {
		pts[i] = at(float64(i) / guideSamples)
	}
	return pts
}

// handles draws a ring around every control point. On a complete line the
// end point takes the color of the last handle.
func (fr Frame) handles(c *canvas) {
	for i, p := range fr.Points {
		col := HandleColors[i%len(HandleColors)]
		if fr.Type == motion.Line && i == 1 && len(fr.Points) == 2 {
			col = HandleColors[3]
		}
		c.ring(p, HandleRadius, PenWidth, col)
	}
}

// object draws a motion object with its top-left corner at the sample
// position.
func (fr Frame) object(c *canvas, s playback.Sample) {
	i := s.Object % 2
	p := s.Position
	if surf := fr.Surfaces[i]; surf != nil {
		x, y := int(p.X()), int(p.Y())
		dst := image.Rect(x, y, x+ObjectSize, y+ObjectSize)
		draw.CatmullRom.Scale(c.img, dst, surf, surf.Bounds(), draw.Over, nil)
		return
	}
	c.box(p, p+motion.P(ObjectSize, ObjectSize), ObjectColors[i])
}
