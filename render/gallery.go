package render

import (
	"context"
	"image"
	"image/color"
	"io"
	"runtime"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/path"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"honnef.co/go/curve"
)

// Colors of gallery cells.
var (
	CurveColor = color.RGBA{0x20, 0x40, 0xc0, 0xff}
	RuleColor  = color.RGBA{0xc8, 0xc8, 0xc8, 0xff}
	LabelColor = color.RGBA{0x20, 0x20, 0x20, 0xff}
)

// GalleryOptions controls the contact sheet of easing previews.
type GalleryOptions struct {
	Cell    curve.Size // size of one cell; default 120×120
	Columns int        // cells per row; default 8
	Preview easing.PreviewOptions
	Labels  bool // print the family name below each curve
	Workers int  // parallel cell renderers; default GOMAXPROCS
}

func (o GalleryOptions) withDefaults() GalleryOptions {
	if o.Cell.Width <= 0 || o.Cell.Height <= 0 {
		o.Cell = curve.Sz(120, 120)
	}
	if o.Columns < 1 {
		o.Columns = 8
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// GalleryImage renders one preview cell per spec into a contact sheet.
// Cells are rendered concurrently; a canceled context stops the remaining
// cells.
func GalleryImage(ctx context.Context, specs []easing.Spec, opts GalleryOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()
	thumbs := easing.Gallery(specs, opts.Cell, opts.Columns, opts.Preview)
	size := easing.GallerySize(len(specs), opts.Cell, opts.Columns)
	sheet := image.NewRGBA(image.Rect(0, 0, max(int(size.Width), 1), max(int(size.Height), 1)))
	draw.Draw(sheet, sheet.Bounds(), image.White, image.Point{}, draw.Src)

	cells := make([]*image.RGBA, len(thumbs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, th := range thumbs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells[i] = Thumbnail(th, opts.Labels)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, th := range thumbs {
		r := image.Rect(int(th.Box.X0), int(th.Box.Y0), int(th.Box.X1), int(th.Box.Y1))
		draw.Draw(sheet, r, cells[i], image.Point{}, draw.Src)
	}
	tracer().Infof("rendered gallery of %d cells, %dx%d", len(cells), sheet.Bounds().Dx(), sheet.Bounds().Dy())
	return sheet, nil
}

// Gallery renders a contact sheet of easing previews as PNG to w.
func Gallery(ctx context.Context, w io.Writer, specs []easing.Spec, opts GalleryOptions) error {
	img, err := GalleryImage(ctx, specs, opts)
	if err != nil {
		return err
	}
	return WritePNG(w, img)
}

// Thumbnail renders a single preview into an image the size of its box.
// The preview is drawn relative to the box origin.
func Thumbnail(th easing.Thumbnail, labels bool) *image.RGBA {
	w, h := max(int(th.Box.Width()), 1), max(int(th.Box.Height()), 1)
	c := newCanvas(w, h, color.White)
	origin := motion.FromCurve(curve.Pt(th.Box.X0, th.Box.Y0))
	local := func(p motion.Pair) motion.Pair { return p - origin }
	c.polyline([]motion.Pair{local(th.Base[0]), local(th.Base[1])}, 1, RuleColor)
	c.polyline([]motion.Pair{local(th.Top[0]), local(th.Top[1])}, 1, RuleColor)
	pts := make([]motion.Pair, len(th.Polyline))
	for i, p := range th.Polyline {
		pts[i] = local(p)
	}
	c.polyline(pts, 2, CurveColor)
	c.disc(local(th.Start), 2.5, HandleColors[0])
	c.disc(local(th.End), 2.5, HandleColors[3])
	if labels {
		name := th.Spec.String()
		x := max((w-labelWidth(name))/2, 0)
		c.label(motion.P(float64(x), float64(h-3)), name, LabelColor)
	}
	return c.img
}

// GuideSVG returns the guide of a complete path as SVG path data, or the
// empty string while the path is incomplete.
func GuideSVG(m *path.Model) string {
	return m.Guide().SVG(curve.SVGOptions{})
}
