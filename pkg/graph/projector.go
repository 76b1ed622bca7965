package graph

import (
	"github.com/taigrr/surfgraph/pkg/math3d"
)

// DefaultScreenDistance is the focal distance used by NewProjector.
const DefaultScreenDistance = 2500

// Projector maps world points to screen points with a yaw-then-roll
// rotation followed by a perspective divide.
type Projector struct {
	// ScreenDistance controls the strength of the perspective. Must be > 0.
	ScreenDistance float64
}

// NewProjector creates a projector with DefaultScreenDistance.
func NewProjector() *Projector {
	return &Projector{ScreenDistance: DefaultScreenDistance}
}

// Project transforms p into screen space.
//
// drift is the pan offset applied after rotation and zee is the dolly
// translation along the view axis. The second result is false when the
// point lies on or behind the camera plane; such points are dropped from a
// path rather than clipped.
func (pr *Projector) Project(p math3d.Vec3, o *Orientation, drift math3d.Vec2, zee float64) (math3d.Vec2, bool) {
	if !p.IsFinite() {
		return math3d.Vec2{}, false
	}

	r := o.Rotate(p)
	zz := r.Z + pr.ScreenDistance + zee
	if zz <= 0 {
		return math3d.Vec2{}, false
	}

	xx := pr.ScreenDistance * (r.X + drift.X) / zz
	yy := pr.ScreenDistance * (r.Y - drift.Y) / zz
	return math3d.V2(xx, -yy), true
}

// Label is a projected text anchor.
type Label struct {
	Text string
	At   math3d.Vec2
}

// ProjectLabel projects a text anchor with the same transform as Project.
func (pr *Projector) ProjectLabel(text string, p math3d.Vec3, o *Orientation, drift math3d.Vec2, zee float64) (Label, bool) {
	at, ok := pr.Project(p, o, drift, zee)
	if !ok {
		return Label{}, false
	}
	return Label{Text: text, At: at}, true
}
