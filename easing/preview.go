package easing

import (
	"iter"
	"math"

	"github.com/npillmayer/motion"
	"honnef.co/go/curve"
)

// PreviewOptions controls the geometry of an easing preview.
type PreviewOptions struct {
	Samples int     // polyline vertices, at least 2; default 64
	Padding float64 // inset of the plot inside its box; default 10% of the smaller side
}

// Thumbnail is the geometry of one easing-curve preview, in the
// coordinates of the box it was fitted into (y pointing down).
type Thumbnail struct {
	Spec     Spec
	Box      curve.Rect    // the cell the preview was fitted into
	Polyline []motion.Pair // the sampled curve
	Start    motion.Pair   // curve value at progress 0
	End      motion.Pair   // curve value at progress 1
	Base     [2]motion.Pair
	Top      [2]motion.Pair
	Min, Max float64 // sampled value range, always including [0,1]
}

// Preview samples the curve of spec and fits it into box. The vertical
// range covers the sampled values and [0,1], so overshooting curves stay
// visible. Base and Top are the lines of eased progress 0 and 1.
func Preview(spec Spec, box curve.Rect, opts PreviewOptions) Thumbnail {
	n := opts.Samples
	if n < 2 {
		n = 64
	}
	box = box.Abs()
	pad := opts.Padding
	if pad <= 0 {
		pad = 0.1 * math.Min(box.Width(), box.Height())
	}
	plot := box.Inflate(-pad, -pad).Abs()
	f := spec.Curve()
	values := make([]float64, n)
	lo, hi := 0.0, 1.0
	for i := range values {
		v := f(float64(i) / float64(n-1))
		values[i] = v
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	m := motion.FitUnit(0, lo, 1, hi, plot)
	th := Thumbnail{
		Spec:     spec,
		Box:      box,
		Polyline: make([]motion.Pair, n),
		Min:      lo,
		Max:      hi,
	}
	for i, v := range values {
		th.Polyline[i] = m.Transform(motion.P(float64(i)/float64(n-1), v))
	}
	th.Start, th.End = th.Polyline[0], th.Polyline[n-1]
	th.Base = [2]motion.Pair{m.Transform(motion.P(0, 0)), m.Transform(motion.P(1, 0))}
	th.Top = [2]motion.Pair{m.Transform(motion.P(0, 1)), m.Transform(motion.P(1, 1))}
	tracer().Debugf("preview %s: %d samples, range [%g,%g]", spec, n, lo, hi)
	return th
}

// Path returns the preview polyline as a Bézier path.
func (th Thumbnail) Path() curve.BezPath {
	var p curve.BezPath
	for i, pt := range th.Polyline {
		if i == 0 {
			p.MoveTo(motion.CurvePoint(pt))
			continue
		}
		p.LineTo(motion.CurvePoint(pt))
	}
	return p
}

// Elements iterates over the path elements of the preview polyline.
func (th Thumbnail) Elements() iter.Seq[curve.PathElement] {
	return th.Path().PathElements(0)
}

// SVG returns the preview polyline as SVG path data.
func (th Thumbnail) SVG() string {
	return curve.SVG(th.Elements(), curve.SVGOptions{})
}

// Gallery lays out one preview cell per spec, row-major with the given
// number of columns, each cell of size cell. The origin is (0,0).
func Gallery(specs []Spec, cell curve.Size, columns int, opts PreviewOptions) []Thumbnail {
	if columns < 1 {
		columns = 1
	}
	thumbs := make([]Thumbnail, len(specs))
	for i, spec := range specs {
		row, col := i/columns, i%columns
		origin := curve.Pt(float64(col)*cell.Width, float64(row)*cell.Height)
		thumbs[i] = Preview(spec, curve.NewRectFromOrigin(origin, cell), opts)
	}
	return thumbs
}

// GallerySize is the extent of a gallery of n cells.
func GallerySize(n int, cell curve.Size, columns int) curve.Size {
	if columns < 1 {
		columns = 1
	}
	rows := (n + columns - 1) / columns
	cols := min(n, columns)
	return curve.Sz(float64(cols)*cell.Width, float64(rows)*cell.Height)
}

// CatalogueSpecs returns default specs for every family of the catalogue.
func CatalogueSpecs() []Spec {
	fams := Catalogue()
	specs := make([]Spec, len(fams))
	for i, f := range fams {
		specs[i] = Of(f)
	}
	return specs
}
