package graph

import (
	"math"
	"testing"
)

func TestDrag(t *testing.T) {
	g := NewGraph()
	g.SetOrientation(-math.Pi/2, 0)
	redraws := 0
	g.OnRedraw(func() { redraws++ })
	c := NewController(g)

	if !c.Drag(DragEvent{Buttons: ButtonPrimary, DX: 2, DY: -1}) {
		t.Error("primary drag not handled")
	}
	if !near(g.Orientation().Roll(), -math.Pi/2+0.01) || !near(g.Orientation().Yaw(), 0.02) {
		t.Errorf("orientation = (%v, %v)", g.Orientation().Roll(), g.Orientation().Yaw())
	}

	if !c.Drag(DragEvent{Buttons: ButtonSecondary, DX: 2, DY: -1}) {
		t.Error("secondary drag not handled")
	}
	if d := g.View().Drift(); d.X != 2 || d.Y != -1 {
		t.Errorf("drift = %v, want (2, -1)", d)
	}

	if c.Drag(DragEvent{Buttons: ButtonPrimary | ButtonSecondary, DX: 2, DY: -1}) {
		t.Error("both buttons handled")
	}
	if d := g.View().Drift(); d.X != 2 || d.Y != -1 {
		t.Errorf("ignored drag moved the view: %v", d)
	}
	if redraws != 2 {
		t.Errorf("redraws = %d, want 2", redraws)
	}
}

func TestWheel(t *testing.T) {
	g := NewGraph()
	c := NewController(g)
	prevented := 0
	ev := WheelEvent{
		DeltaX:         1,
		DeltaY:         2,
		DeltaZ:         3,
		PreventDefault: func() { prevented++ },
	}

	c.Wheel(ev)
	if !near(g.View().Scale, math.Sqrt2/2) {
		t.Errorf("scale = %v, want %v", g.View().Scale, math.Sqrt2/2)
	}

	g.ZScaling = true
	c.Wheel(ev)
	if g.View().Zee != 600 {
		t.Errorf("zee = %v, want 600", g.View().Zee)
	}
	if !near(g.View().Scale, math.Sqrt2/2) {
		t.Error("dolly changed the scale")
	}
	if prevented != 2 {
		t.Errorf("PreventDefault called %d times, want 2", prevented)
	}

	c.Wheel(WheelEvent{DeltaY: -6})
	if g.View().Zee != 0 {
		t.Errorf("zee = %v, want 0", g.View().Zee)
	}
}

func TestInertiaDecays(t *testing.T) {
	in := NewInertia(60)
	if in.Moving() {
		t.Fatal("new inertia is moving")
	}
	in.Push(0.01, 0.02)

	dRoll, dYaw, moving := in.Step()
	if !moving || dRoll != 0.01 || dYaw != 0.02 {
		t.Fatalf("first step = (%v, %v, %v), want pushed velocity", dRoll, dYaw, moving)
	}

	prev := dYaw
	for i := range 1000 {
		_, dYaw, moving = in.Step()
		if !moving {
			return
		}
		if math.Abs(dYaw) > math.Abs(prev) {
			t.Fatalf("step %d: velocity grew from %v to %v", i, prev, dYaw)
		}
		prev = dYaw
	}
	t.Error("inertia did not come to rest")
}

func TestControllerInertia(t *testing.T) {
	g := NewGraph()
	c := NewController(g)
	if c.Step() {
		t.Error("Step without inertia rotated")
	}

	c.Inertia = NewInertia(60)
	c.Drag(DragEvent{Buttons: ButtonPrimary, DX: 3, DY: 1})
	c.Release()

	roll, yaw := g.Orientation().Roll(), g.Orientation().Yaw()
	if !c.Step() {
		t.Fatal("Step after release did not rotate")
	}
	if !near(g.Orientation().Roll(), roll-0.01) || !near(g.Orientation().Yaw(), yaw+0.03) {
		t.Errorf("orientation = (%v, %v)", g.Orientation().Roll(), g.Orientation().Yaw())
	}

	c.Drag(DragEvent{Buttons: ButtonPrimary})
	if c.Inertia.Moving() {
		t.Error("grabbing the view did not stop inertia")
	}
}
