// Package graph is the projection and surface-sampling engine of surfgraph.
//
// A Graph owns the view state (orientation, pan, zoom, dolly, axis ranges),
// a registry of named functions and the settings of the frame. Draw
// assembles a complete frame on a Surface: background, axes, one wireframe
// per visible function and the axis labels, in that order.
//
// A Graph is not safe for concurrent use. All mutation and drawing happen on
// the goroutine that processes input events.
package graph

import (
	"github.com/taigrr/surfgraph/pkg/math3d"
)

// Axes toggles the three axis lines.
type Axes struct {
	X, Y, Z bool
}

// AxisNames are the labels drawn at the end of each axis.
type AxisNames struct {
	X, Y, Z string
}

// Style holds the colours and font used for a frame. Colours are tokens
// understood by the Surface (CSS names or #rrggbb).
type Style struct {
	Background string // empty clears the surface instead of filling it
	AxisColor  string
	LabelColor string
	Font       string
}

// DefaultStyle returns the style of a new Graph.
func DefaultStyle() Style {
	return Style{
		AxisColor:  "blue",
		LabelColor: "white",
		Font:       "96px arial",
	}
}

// FrameStats summarises one call to Draw.
type FrameStats struct {
	Functions int // visible functions drawn
	Lines     int // stroked paths, axes included
	Points    int // projected vertices
	Omitted   int // vertices behind the camera
}

// Graph is the view state and scene of one plot.
type Graph struct {
	Names AxisNames
	Axes  Axes
	Style Style

	// ZScaling makes the wheel dolly the camera instead of zooming.
	ZScaling bool

	orientation *Orientation
	view        *View
	projector   *Projector
	registry    *Registry
	sampler     *Sampler
	params      *Params
	extensions  map[string]any

	onRedraw func()
	animator *Animator
}

// NewGraph creates a graph with unit ranges, no rotation and the default
// palette.
func NewGraph() *Graph {
	view := NewView()
	return &Graph{
		Names:       AxisNames{X: "X", Y: "Y", Z: "Z"},
		Axes:        Axes{X: true, Y: true, Z: true},
		Style:       DefaultStyle(),
		orientation: NewOrientation(),
		view:        view,
		projector:   NewProjector(),
		registry:    NewRegistry(nil),
		sampler:     &Sampler{View: view},
		params:      NewParams(),
		extensions:  make(map[string]any),
	}
}

// Orientation returns the roll/yaw state.
func (g *Graph) Orientation() *Orientation { return g.orientation }

// View returns the pan, zoom and range state.
func (g *Graph) View() *View { return g.view }

// Projector returns the projector used by Draw.
func (g *Graph) Projector() *Projector { return g.projector }

// Registry returns the function registry.
func (g *Graph) Registry() *Registry { return g.registry }

// Sampler returns the wireframe sampler.
func (g *Graph) Sampler() *Sampler { return g.sampler }

// Params returns the parameter store that functions may capture.
func (g *Graph) Params() *Params { return g.params }

// Extension returns an option value that was not recognised by Apply.
func (g *Graph) Extension(key string) (any, bool) {
	v, ok := g.extensions[key]
	return v, ok
}

// Extensions returns every unrecognised option, keyed by name.
func (g *Graph) Extensions() map[string]any {
	return g.extensions
}

// SetRangeX maps [from, to] onto the X axis; see View.SetRangeX.
func (g *Graph) SetRangeX(from, to float64, tick ...float64) { g.view.SetRangeX(from, to, tick...) }

// SetRangeY maps [from, to] onto the Y axis.
func (g *Graph) SetRangeY(from, to float64, tick ...float64) { g.view.SetRangeY(from, to, tick...) }

// SetRangeZ maps [from, to] onto the Z axis.
func (g *Graph) SetRangeZ(from, to float64, tick ...float64) { g.view.SetRangeZ(from, to, tick...) }

// SetAxisNames sets the labels. The parameter order is x, z, y.
func (g *Graph) SetAxisNames(x, z, y string) {
	g.Names = AxisNames{X: x, Y: y, Z: z}
}

// SetOrientation sets roll and yaw without redrawing.
func (g *Graph) SetOrientation(roll, yaw float64) { g.orientation.Set(roll, yaw) }

// RotateBy rotates the view without redrawing; see Orientation.RotateBy.
func (g *Graph) RotateBy(deltaRoll, deltaYaw float64) { g.orientation.RotateBy(deltaRoll, deltaYaw) }

// Pan moves the drift without redrawing.
func (g *Graph) Pan(dx, dy float64) { g.view.Pan(dx, dy) }

// Zoom multiplies the scale without redrawing.
func (g *Graph) Zoom(factor float64) { g.view.Zoom(factor) }

// DollyBy moves the camera along the view axis.
func (g *Graph) DollyBy(d float64) { g.view.DollyBy(d) }

// SetCentered switches the sampler between edge-to-edge and centred sweeps.
func (g *Graph) SetCentered(centered bool) { g.sampler.Centered = centered }

// InsertFunction adds or replaces a function; see Registry.Insert.
func (g *Graph) InsertFunction(id string, f Func, color ...string) *Entry {
	return g.registry.Insert(id, f, color...)
}

// SetVisible shows or hides a function without redrawing.
func (g *Graph) SetVisible(id string, visible bool) bool {
	return g.registry.SetVisible(id, visible)
}

// OnRedraw installs the hook called by RequestRedraw. It usually draws the
// graph on the display surface and presents it.
func (g *Graph) OnRedraw(fn func()) {
	g.onRedraw = fn
}

// RequestRedraw runs the redraw hook synchronously. Without a hook it does
// nothing.
func (g *Graph) RequestRedraw() {
	if g.onRedraw != nil {
		g.onRedraw()
	}
}

// Draw renders a full frame on s.
func (g *Graph) Draw(s Surface) FrameStats {
	var st FrameStats

	s.Save()
	w, h := s.Width(), s.Height()
	if g.Style.Background == "" {
		s.ClearRect(0, 0, w, h)
	} else {
		s.SetFillColor(g.Style.Background)
		s.FillRect(0, 0, w, h)
	}

	cw, ch := w*0.5, h*0.5
	scale := g.view.Scale
	s.Translate(cw, ch)
	s.Scale(scale, scale)
	s.SetLineWidth(1 / scale)
	s.SetStrokeColor(g.Style.AxisColor)

	o := g.view.Origin(cw)
	if g.Axes.X {
		g.segment(s, &st, math3d.V3(-cw, o.Y, o.Z), math3d.V3(cw, o.Y, o.Z))
	}
	if g.Axes.Y {
		g.segment(s, &st, math3d.V3(o.X, -cw, o.Z), math3d.V3(o.X, cw, o.Z))
	}
	if g.Axes.Z {
		g.segment(s, &st, math3d.V3(o.X, o.Y, -cw), math3d.V3(o.X, o.Y, cw))
	}

	for e := range g.registry.Entries() {
		if !e.Visible || e.Func == nil {
			continue
		}
		g.drawFunction(s, &st, e, cw)
	}

	// Label anchors use the half height, as the axis ends always have.
	s.SetFillColor(g.Style.LabelColor)
	s.SetFont(g.Style.Font)
	g.text(s, g.Names.X, math3d.V3(ch, o.Y, o.Z))
	g.text(s, g.Names.Y, math3d.V3(o.X, ch, o.Z))
	g.text(s, g.Names.Z, math3d.V3(o.X, o.Y, ch))
	s.Restore()

	tracer().Debugf("frame %gx%g: %d functions, %d lines, %d points, %d omitted",
		w, h, st.Functions, st.Lines, st.Points, st.Omitted)
	return st
}

func (g *Graph) drawFunction(s Surface, st *FrameStats, e *Entry, half float64) {
	st.Functions++
	s.SetStrokeColor(e.StrokeColor())
	for line := range g.sampler.Lines(e.Func, half) {
		s.BeginPath()
		for p := range line {
			g.lineTo(s, st, p)
		}
		s.Stroke()
		st.Lines++
	}
}

func (g *Graph) segment(s Surface, st *FrameStats, a, b math3d.Vec3) {
	s.BeginPath()
	g.lineTo(s, st, a)
	g.lineTo(s, st, b)
	s.Stroke()
	st.Lines++
}

func (g *Graph) lineTo(s Surface, st *FrameStats, p math3d.Vec3) {
	sp, ok := g.projector.Project(p, g.orientation, g.view.Drift(), g.view.Zee)
	if !ok {
		st.Omitted++
		return
	}
	st.Points++
	s.LineTo(sp.X, sp.Y)
}

func (g *Graph) text(s Surface, text string, p math3d.Vec3) {
	l, ok := g.projector.ProjectLabel(text, p, g.orientation, g.view.Drift(), g.view.Zee)
	if !ok {
		return
	}
	s.FillText(l.Text, l.At.X, l.At.Y)
}
