package graph

import (
	"iter"
	"math"

	"github.com/taigrr/surfgraph/pkg/math3d"
)

// Func is a scalar function y = f(x, z) drawn as a surface.
type Func func(x, z float64) float64

// Line is one wireframe curve as a lazy sequence of world points.
type Line = iter.Seq[math3d.Vec3]

// Polyline is a projected wireframe curve.
type Polyline struct {
	Points  []math3d.Vec2
	Omitted int // vertices that projected behind the camera
}

// Sampler turns a function into the constant-z and constant-x curves of a
// wireframe grid.
//
// Sampling happens in surface units: the inner sweep of every curve walks
// from -half to +half in steps of one, so grid density follows the surface
// resolution. Outer steps follow the axis ticks.
type Sampler struct {
	View *View

	// Centered sweeps grid lines outward from zero in both directions
	// instead of from one edge to the other.
	Centered bool

	// CrossScale feeds z*gridScaleX (without the z shift) to the evaluator
	// on constant-x curves instead of the z-normalised coordinate.
	CrossScale bool
}

// grid holds the per-call scale factors derived from the view.
type grid struct {
	scaleX, scaleZ float64 // surface units to domain units
	height         float64 // domain units to surface units on Y
	stepX, stepZ   float64 // outer step between curves
}

func (s *Sampler) grid(half float64) grid {
	e, t := s.View.Extent, s.View.Tick
	return grid{
		scaleX: e.Width / half,
		scaleZ: e.Depth / half,
		height: half / e.Height,
		stepX:  half * t.X / e.Width,
		stepZ:  half * t.Z / e.Depth,
	}
}

// Upper bounds on the curves of one family and the vertices of one curve.
// Ticks or widths that would exceed them draw nothing.
const (
	maxCurves = 1 << 16
	maxPoints = 1 << 24
)

// sweep yields the outer coordinates of the curves of one family.
func sweep(half, step float64, centered bool) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if !(step > 0) || !((2*half+1)/step <= maxCurves) {
			return
		}
		start := -half
		if centered {
			start = 0
		}
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if !(v < half+1) {
				break
			}
			if !yield(v) {
				return
			}
		}
		if !centered {
			return
		}
		for i := 1; ; i++ {
			v := -float64(i) * step
			if !(v > -half-1) {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// points returns the number of unit steps from -half to half inclusive.
func points(half float64) int {
	if !(half >= 0) || 2*half >= maxPoints {
		return 0
	}
	return int(math.Floor(2*half)) + 1
}

// Lines yields the wireframe of f for a surface half width of half: first
// every constant-z curve, then every constant-x curve. A nil f yields
// nothing.
func (s *Sampler) Lines(f Func, half float64) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if f == nil {
			return
		}
		g := s.grid(half)
		for z := range sweep(half, g.stepZ, s.Centered) {
			if !yield(s.alongX(f, g, half, z)) {
				return
			}
		}
		for x := range sweep(half, g.stepX, s.Centered) {
			if !yield(s.alongZ(f, g, half, x)) {
				return
			}
		}
	}
}

// alongX is the curve of constant z.
func (s *Sampler) alongX(f Func, g grid, half, z float64) Line {
	shift := s.View.Shift
	zz := z*g.scaleZ - shift.Z
	return func(yield func(math3d.Vec3) bool) {
		for i := range points(half) {
			x := float64(i) - half
			y, ok := evaluate(f, x*g.scaleX-shift.X, zz)
			if !ok {
				continue
			}
			if !yield(math3d.V3(x, (y+shift.Y)*g.height, z)) {
				return
			}
		}
	}
}

// alongZ is the curve of constant x.
func (s *Sampler) alongZ(f Func, g grid, half, x float64) Line {
	shift := s.View.Shift
	xx := x*g.scaleX - shift.X
	return func(yield func(math3d.Vec3) bool) {
		for i := range points(half) {
			z := float64(i) - half
			zz := z*g.scaleZ - shift.Z
			if s.CrossScale {
				zz = z * g.scaleX
			}
			y, ok := evaluate(f, xx, zz)
			if !ok {
				continue
			}
			if !yield(math3d.V3(x, (y+shift.Y)*g.height, z)) {
				return
			}
		}
	}
}

// evaluate calls f and reports false when it panics or returns a value
// that is not finite.
func evaluate(f Func, x, z float64) (y float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			y, ok = 0, false
		}
	}()
	y = f(x, z)
	return y, !math.IsNaN(y) && !math.IsInf(y, 0)
}

// Count returns the number of curves Lines yields for a non-nil function.
func (s *Sampler) Count(half float64) int {
	g := s.grid(half)
	n := 0
	for range sweep(half, g.stepZ, s.Centered) {
		n++
	}
	for range sweep(half, g.stepX, s.Centered) {
		n++
	}
	return n
}

// Polylines samples f and projects every curve. Curves whose vertices all
// fall behind the camera are returned with no points.
func (s *Sampler) Polylines(f Func, half float64, pr *Projector, o *Orientation) []Polyline {
	var out []Polyline
	drift := s.View.Drift()
	for line := range s.Lines(f, half) {
		var pl Polyline
		for p := range line {
			sp, ok := pr.Project(p, o, drift, s.View.Zee)
			if !ok {
				pl.Omitted++
				continue
			}
			pl.Points = append(pl.Points, sp)
		}
		out = append(out, pl)
	}
	return out
}
