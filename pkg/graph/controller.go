package graph

import "math"

// Pointer button masks carried by DragEvent.Buttons.
const (
	ButtonPrimary   = 1
	ButtonSecondary = 2
)

// DragEvent is a pointer move while buttons are held.
type DragEvent struct {
	Buttons int
	DX, DY  float64
}

// WheelEvent is a scroll. PreventDefault, when set, is called to
// acknowledge that the viewer consumed the event.
type WheelEvent struct {
	DeltaX, DeltaY, DeltaZ float64
	PreventDefault         func()
}

// dragRadians converts pointer movement into rotation.
const dragRadians = 1.0 / 100

// Controller turns pointer input into view changes followed by a redraw.
type Controller struct {
	g *Graph

	// Inertia, when set, keeps the view rotating after a drag is released.
	Inertia *Inertia

	lastRoll, lastYaw float64
}

// NewController creates a controller for g without inertia.
func NewController(g *Graph) *Controller {
	return &Controller{g: g}
}

// Drag rotates with the primary button and pans with the secondary one.
// Any other button mask is ignored. It reports whether the view changed.
func (c *Controller) Drag(ev DragEvent) bool {
	switch ev.Buttons {
	case ButtonPrimary:
		dRoll, dYaw := ev.DY*dragRadians, ev.DX*dragRadians
		c.g.RotateBy(dRoll, dYaw)
		c.lastRoll, c.lastYaw = dRoll, dYaw
		if c.Inertia != nil {
			c.Inertia.Stop()
		}
	case ButtonSecondary:
		c.g.Pan(ev.DX, ev.DY)
	default:
		return false
	}
	c.g.RequestRedraw()
	return true
}

// Wheel zooms by 2^(-delta/12), or dollies by delta*100 when the graph has
// ZScaling set. delta is the sum of the three wheel deltas.
func (c *Controller) Wheel(ev WheelEvent) {
	if ev.PreventDefault != nil {
		ev.PreventDefault()
	}
	delta := ev.DeltaX + ev.DeltaY + ev.DeltaZ
	if c.g.ZScaling {
		c.g.view.DollyBy(delta * 100)
	} else {
		c.g.view.Zoom(math.Pow(2, -delta/12))
	}
	c.g.RequestRedraw()
}

// Release ends a drag. The last rotation step is handed to Inertia.
func (c *Controller) Release() {
	if c.Inertia != nil {
		c.Inertia.Push(c.lastRoll, c.lastYaw)
	}
	c.lastRoll, c.lastYaw = 0, 0
}

// Step advances inertia by one frame. It reports whether the view rotated;
// the caller is expected to redraw.
func (c *Controller) Step() bool {
	if c.Inertia == nil {
		return false
	}
	dRoll, dYaw, moving := c.Inertia.Step()
	if !moving {
		return false
	}
	c.g.RotateBy(dRoll, dYaw)
	return true
}
