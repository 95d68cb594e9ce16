package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/path"
	"gopkg.in/yaml.v3"
)

// Version is the scene file format version written by Encode.
const Version = 1

// File is the YAML document of a scene. Zero values mean "keep the
// default" for frame, margin, tolerance and duration.
type File struct {
	Version    int      `yaml:"version"`
	Frame      Frame    `yaml:"frame,omitempty"`
	Margin     float64  `yaml:"margin,omitempty"`
	Tolerance  float64  `yaml:"tolerance,omitempty"`
	Duration   float64  `yaml:"duration,omitempty"` // seconds
	Path       Path     `yaml:"path"`
	Comparison bool     `yaml:"comparison,omitempty"`
	Selected   int      `yaml:"selected,omitempty"`
	Objects    []Object `yaml:"objects,omitempty"`
}

// Frame is the size of the drawing area.
type Frame struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Path is the path type by name and its control points.
type Path struct {
	Type   string  `yaml:"type"`
	Points []Point `yaml:"points,omitempty"`
}

// Point is a control point.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Object is one motion object.
type Object struct {
	Easing  Easing `yaml:"easing"`
	Surface string `yaml:"surface,omitempty"`
}

// Easing describes an easing spec by family name and parameters.
type Easing struct {
	Family    string    `yaml:"family"`
	Amplitude float64   `yaml:"amplitude,omitempty"`
	Period    float64   `yaml:"period,omitempty"`
	Overshoot float64   `yaml:"overshoot,omitempty"`
	Segments  []Segment `yaml:"segments,omitempty"`
	Knots     []Knot    `yaml:"knots,omitempty"`
}

// Segment is a piece of a Bézier spline easing.
type Segment struct {
	C1  Point `yaml:"c1,flow"`
	C2  Point `yaml:"c2,flow"`
	End Point `yaml:"end,flow"`
}

// Knot is a knot of a TCB spline easing.
type Knot struct {
	At         Point   `yaml:"at,flow"`
	Tension    float64 `yaml:"tension,omitempty"`
	Continuity float64 `yaml:"continuity,omitempty"`
	Bias       float64 `yaml:"bias,omitempty"`
}

// ReadFile reads and decodes the scene file name.
func ReadFile(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	tracer().Debugf("read scene %s, %d bytes", name, len(data))
	return Decode(bytes.NewReader(data))
}

// WriteFile encodes f into the file name.
func WriteFile(name string, f *File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	return nil
}

// Decode reads a scene document from r. Unknown fields are an error. The
// decoded file is validated.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode writes f to w as YAML.
func Encode(w io.Writer, f *File) error {
	if f == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidScene)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return enc.Close()
}

// Capture records the current model and config as a scene file. Custom
// easings cannot be stored and make Capture fail.
func Capture(m *path.Model, c Config) (*File, error) {
	f := &File{
		Version:    Version,
		Frame:      Frame{Width: m.Frame().Width, Height: m.Frame().Height},
		Margin:     m.Margin(),
		Tolerance:  m.Tolerance(),
		Duration:   c.Seconds(),
		Path:       Path{Type: m.Type().String()},
		Comparison: c.Comparison,
		Selected:   c.Selected,
	}
	for _, p := range m.Points() {
		f.Path.Points = append(f.Path.Points, Point{X: p.X(), Y: p.Y()})
	}
	for i := 0; i < Objects; i++ {
		e, err := encodeEasing(c.Easing[i])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		f.Objects = append(f.Objects, Object{Easing: e, Surface: c.Surfaces[i]})
	}
	return f, nil
}

// Validate checks f without changing anything.
func (f *File) Validate() error {
	_, _, err := f.resolve()
	return err
}

// Apply loads the scene into m and c. Nothing is changed if the scene is
// invalid. Loading the path replaces all points of m, which starts a new
// path generation.
func (f *File) Apply(m *path.Model, c *Config) error {
	typ, cfg, err := f.resolve()
	if err != nil {
		return err
	}
	if f.Frame.Width > 0 && f.Frame.Height > 0 {
		m.SetFrame(f.Frame.Width, f.Frame.Height)
	}
	if f.Margin > 0 {
		m.SetMargin(f.Margin)
	}
	if f.Tolerance > 0 {
		m.SetTolerance(f.Tolerance)
	}
	m.SetType(typ)
	for _, p := range f.Path.Points {
		m.AddPoint(motion.P(p.X, p.Y))
	}
	*c = cfg
	tracer().Infof("applied scene: %s path with %d points, %v", typ, m.Len(), cfg.Duration)
	return nil
}

// resolve validates f and computes the path type and the config it
// describes. Unset config fields start from Default.
func (f *File) resolve() (motion.PathType, Config, error) {
	cfg := Default()
	if f.Version < 0 || f.Version > Version {
		return 0, cfg, fmt.Errorf("%w: unsupported version %d", ErrInvalidScene, f.Version)
	}
	if f.Frame.Width < 0 || f.Frame.Height < 0 || f.Margin < 0 || f.Tolerance < 0 {
		return 0, cfg, fmt.Errorf("%w: negative geometry", ErrInvalidScene)
	}
	typ := motion.Line
	if f.Path.Type != "" {
		t, ok := motion.ParsePathType(f.Path.Type)
		if !ok {
			return 0, cfg, fmt.Errorf("%w: unknown path type %q", ErrInvalidScene, f.Path.Type)
		}
		typ = t
	}
	cfg.PathType = typ
	if len(f.Path.Points) > typ.MaxPoints() {
		return 0, cfg, fmt.Errorf("%w: %d points for a %s path", ErrInvalidScene, len(f.Path.Points), typ)
	}
	for i, p := range f.Path.Points {
		if !motion.P(p.X, p.Y).IsFinite() {
			return 0, cfg, fmt.Errorf("%w: point %d is not finite", ErrInvalidScene, i)
		}
	}
	if f.Duration != 0 {
		if err := cfg.SetDuration(f.Duration); err != nil {
			return 0, cfg, fmt.Errorf("%w: %w", ErrInvalidScene, err)
		}
	}
	if len(f.Objects) > Objects {
		return 0, cfg, fmt.Errorf("%w: %d motion objects, at most %d", ErrInvalidScene, len(f.Objects), Objects)
	}
	for i, o := range f.Objects {
		spec, err := o.Easing.spec()
		if err != nil {
			return 0, cfg, fmt.Errorf("%w: object %d: %w", ErrInvalidScene, i, err)
		}
		cfg.Easing[i] = spec
		cfg.Surfaces[i] = o.Surface
	}
	if err := cfg.Select(f.Selected); err != nil {
		return 0, cfg, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	cfg.Comparison = f.Comparison
	return typ, cfg, nil
}

func (e Easing) spec() (easing.Spec, error) {
	fam, err := easing.ParseFamily(e.Family)
	if err != nil {
		return easing.Spec{}, err
	}
	if fam == easing.Custom {
		return easing.Spec{}, fmt.Errorf("custom easing cannot be loaded from a file")
	}
	for _, v := range []float64{e.Amplitude, e.Period, e.Overshoot} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return easing.Spec{}, fmt.Errorf("non-finite parameter for %s", fam)
		}
	}
	spec := easing.Spec{
		Family:    fam,
		Amplitude: e.Amplitude,
		Period:    e.Period,
		Overshoot: e.Overshoot,
	}
	for _, s := range e.Segments {
		spec.Segments = append(spec.Segments, easing.Segment{
			C1:  motion.P(s.C1.X, s.C1.Y),
			C2:  motion.P(s.C2.X, s.C2.Y),
			End: motion.P(s.End.X, s.End.Y),
		})
	}
	for _, k := range e.Knots {
		spec.Knots = append(spec.Knots, easing.Knot{
			At:         motion.P(k.At.X, k.At.Y),
			Tension:    k.Tension,
			Continuity: k.Continuity,
			Bias:       k.Bias,
		})
	}
	if err := spec.Validate(); err != nil {
		return easing.Spec{}, err
	}
	return spec, nil
}

func encodeEasing(spec easing.Spec) (Easing, error) {
	if spec.Family == easing.Custom {
		return Easing{}, fmt.Errorf("%w: custom easing cannot be stored", ErrInvalidScene)
	}
	e := Easing{
		Family:    spec.Family.String(),
		Amplitude: spec.Amplitude,
		Period:    spec.Period,
		Overshoot: spec.Overshoot,
	}
	pt := func(p motion.Pair) Point { return Point{X: p.X(), Y: p.Y()} }
	for _, s := range spec.Segments {
		e.Segments = append(e.Segments, Segment{C1: pt(s.C1), C2: pt(s.C2), End: pt(s.End)})
	}
	for _, k := range spec.Knots {
		e.Knots = append(e.Knots, Knot{At: pt(k.At), Tension: k.Tension, Continuity: k.Continuity, Bias: k.Bias})
	}
	return e, nil
}
