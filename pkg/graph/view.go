package graph

import (
	"errors"
	"fmt"

	"github.com/taigrr/surfgraph/pkg/math3d"
)

// ErrDegenerateRange is returned by View.Validate when an axis range has a
// zero or negative extent, or a tick that is not positive or too fine to
// sample.
var ErrDegenerateRange = errors.New("degenerate axis range")

// Extent holds half the configured range on each axis.
type Extent struct {
	Width, Height, Depth float64
}

// View holds pan, zoom, dolly and the per-axis range mapping.
//
// Extents are divided by without checks; a zero extent yields Inf or NaN
// screen coordinates. Call Validate before drawing when ranges come from
// untrusted input.
type View struct {
	Scale float64 // zoom applied by the surface, >= 0
	PanX  float64 // drift along screen X
	PanY  float64 // drift along screen Y
	Zee   float64 // dolly along the view axis

	Extent Extent
	Shift  math3d.Vec3
	Tick   math3d.Vec3
}

// NewView returns a view with unit ranges, unit ticks and a scale of 1.
func NewView() *View {
	return &View{
		Scale:  1,
		Extent: Extent{Width: 1, Height: 1, Depth: 1},
		Tick:   math3d.V3(1, 1, 1),
	}
}

// axisRange converts a [from, to] range into a half extent and a shift.
func axisRange(from, to float64) (extent, shift float64) {
	return (to - from) / 2, (to + from) / -2
}

// SetRangeX maps [from, to] onto the X axis. The tick is optional; the
// previous tick is kept when omitted.
func (v *View) SetRangeX(from, to float64, tick ...float64) {
	v.Extent.Width, v.Shift.X = axisRange(from, to)
	if len(tick) > 0 {
		v.Tick.X = tick[0]
	}
}

// SetRangeY maps [from, to] onto the Y axis.
func (v *View) SetRangeY(from, to float64, tick ...float64) {
	v.Extent.Height, v.Shift.Y = axisRange(from, to)
	if len(tick) > 0 {
		v.Tick.Y = tick[0]
	}
}

// SetRangeZ maps [from, to] onto the Z axis.
func (v *View) SetRangeZ(from, to float64, tick ...float64) {
	v.Extent.Depth, v.Shift.Z = axisRange(from, to)
	if len(tick) > 0 {
		v.Tick.Z = tick[0]
	}
}

// Pan moves the drift by (dx, dy).
func (v *View) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Zoom multiplies the scale by factor.
func (v *View) Zoom(factor float64) {
	v.Scale *= factor
}

// DollyBy moves the camera along the view axis.
func (v *View) DollyBy(d float64) {
	v.Zee += d
}

// Drift returns the pan offset as a screen vector.
func (v *View) Drift() math3d.Vec2 {
	return math3d.V2(v.PanX, v.PanY)
}

// Origin returns the world position of the function-space origin for a
// surface half width of half.
func (v *View) Origin(half float64) math3d.Vec3 {
	return math3d.V3(
		v.Shift.X*half/v.Extent.Width,
		v.Shift.Y*half/v.Extent.Height,
		v.Shift.Z*half/v.Extent.Depth,
	)
}

// Validate reports ranges and ticks that cannot produce finite geometry.
func (v *View) Validate() error {
	checks := []struct {
		axis         string
		extent, tick float64
		sampled      bool
	}{
		{"x", v.Extent.Width, v.Tick.X, true},
		{"y", v.Extent.Height, v.Tick.Y, false},
		{"z", v.Extent.Depth, v.Tick.Z, true},
	}
	for _, c := range checks {
		if !(c.extent > 0) {
			return fmt.Errorf("%s axis extent %v: %w", c.axis, c.extent, ErrDegenerateRange)
		}
		if !(c.tick > 0) {
			return fmt.Errorf("%s axis tick %v: %w", c.axis, c.tick, ErrDegenerateRange)
		}
		// about 2*extent/tick curves per family
		if c.sampled && !(c.extent/c.tick <= maxCurves/4) {
			return fmt.Errorf("%s axis tick %v too fine: %w", c.axis, c.tick, ErrDegenerateRange)
		}
	}
	return nil
}
