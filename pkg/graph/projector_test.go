package graph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/surfgraph/pkg/math3d"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// referenceProject is the projection written out term by term.
func referenceProject(p math3d.Vec3, roll, yaw float64, drift math3d.Vec2, zee, screen float64) (math3d.Vec2, bool) {
	xx := p.X*math.Cos(yaw) - p.Z*math.Sin(yaw)
	zz := p.Z*math.Cos(yaw) + p.X*math.Sin(yaw)
	yy := p.Y*math.Cos(roll) - zz*math.Sin(roll)
	zz = zz*math.Cos(roll) + p.Y*math.Sin(roll) + screen + zee
	if zz <= 0 {
		return math3d.Vec2{}, false
	}
	return math3d.V2(screen*(xx+drift.X)/zz, -(screen * (yy - drift.Y) / zz)), true
}

func TestProjectMatchesFormula(t *testing.T) {
	pr := NewProjector()
	tests := []struct {
		name      string
		p         math3d.Vec3
		roll, yaw float64
		drift     math3d.Vec2
		zee       float64
	}{
		{"neutral", math3d.V3(10, 20, 30), 0, 0, math3d.V2(0, 0), 0},
		{"rotated", math3d.V3(-50, 12, 80), 0.4, 0.5, math3d.V2(0, 0), 0},
		{"drift", math3d.V3(5, -5, 5), -0.5, -0.5, math3d.V2(30, -12), 0},
		{"dolly", math3d.V3(100, 0, -100), 1.2, -2.1, math3d.V2(3, 4), 600},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrientation()
			o.Set(tc.roll, tc.yaw)
			got, ok := pr.Project(tc.p, o, tc.drift, tc.zee)
			want, wantOK := referenceProject(tc.p, tc.roll, tc.yaw, tc.drift, tc.zee, DefaultScreenDistance)
			if ok != wantOK {
				t.Fatalf("visible = %v, want %v", ok, wantOK)
			}
			if !near(got.X, want.X) || !near(got.Y, want.Y) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestProjectBehindCamera(t *testing.T) {
	pr := NewProjector()
	o := NewOrientation()
	o.Set(math.Pi/2, 0)

	// With a quarter roll the depth is y + screen distance.
	if _, ok := pr.Project(math3d.V3(0, -3000, 0), o, math3d.Vec2{}, 0); ok {
		t.Error("point behind the camera should not project")
	}
	if _, ok := pr.Project(math3d.V3(0, -DefaultScreenDistance, 0), o, math3d.Vec2{}, 0); ok {
		t.Error("point on the camera plane should not project")
	}

	o.Set(0, 0)
	got, ok := pr.Project(math3d.V3(10, 10, 0), o, math3d.Vec2{}, -1000)
	if !ok {
		t.Fatal("neutral orientation with positive depth should project")
	}
	if !got.IsFinite() {
		t.Errorf("projected point %v is not finite", got)
	}
	// depth = 2500 - 1000 = 1500
	if !near(got.X, 2500*10/1500.0) || !near(got.Y, -2500*10/1500.0) {
		t.Errorf("got %v", got)
	}

	if _, ok := pr.Project(math3d.V3(0, 0, 0), o, math3d.Vec2{}, -DefaultScreenDistance); ok {
		t.Error("zero depth must be treated as behind the camera")
	}
}

func TestProjectNonFinitePoint(t *testing.T) {
	pr := NewProjector()
	if _, ok := pr.Project(math3d.V3(math.NaN(), 0, 0), NewOrientation(), math3d.Vec2{}, 0); ok {
		t.Error("NaN point should be omitted")
	}
}

func TestProjectLabelUsesSameTransform(t *testing.T) {
	pr := NewProjector()
	o := NewOrientation()
	o.Set(0.3, -0.7)
	p := math3d.V3(40, 50, 60)
	drift := math3d.V2(7, 8)

	pt, ok := pr.Project(p, o, drift, 10)
	if !ok {
		t.Fatal("expected visible point")
	}
	l, ok := pr.ProjectLabel("X", p, o, drift, 10)
	if !ok || l.Text != "X" || l.At != pt {
		t.Errorf("label = %+v, want X at %v", l, pt)
	}
}

func TestOrientationCachesTrig(t *testing.T) {
	angles := [][2]float64{{0, 0}, {0.4, 0.5}, {-math.Pi / 2, 0}, {3, -7}}
	o := NewOrientation()
	for _, a := range angles {
		o.Set(a[0], a[1])
		if !near(o.RollCos(), math.Cos(a[0])) || !near(o.RollSin(), math.Sin(a[0])) {
			t.Errorf("roll %v: cached (%v, %v)", a[0], o.RollCos(), o.RollSin())
		}
		if !near(o.YawCos(), math.Cos(a[1])) || !near(o.YawSin(), math.Sin(a[1])) {
			t.Errorf("yaw %v: cached (%v, %v)", a[1], o.YawCos(), o.YawSin())
		}
	}
}

func TestOrientationRotateBy(t *testing.T) {
	o := NewOrientation()
	o.Set(0.2, 0.3)
	o.RotateBy(0.1, 0.1)
	if !near(o.Roll(), 0.1) || !near(o.Yaw(), 0.4) {
		t.Errorf("roll, yaw = %v, %v; want 0.1, 0.4", o.Roll(), o.Yaw())
	}
	if !near(o.RollCos(), math.Cos(0.1)) || !near(o.YawSin(), math.Sin(0.4)) {
		t.Error("RotateBy left stale trig caches")
	}
}

func TestOrientationMatchesMatrices(t *testing.T) {
	o := NewOrientation()
	o.Set(0.7, -1.3)
	p := math3d.V3(3, -4, 5)

	got := o.Rotate(p)

	// Yaw turns the opposite way to a right-handed Y rotation.
	ref := mgl64.Rotate3DX(0.7).Mul3(mgl64.Rotate3DY(1.3)).Mul3x1(mgl64.Vec3{p.X, p.Y, p.Z})
	if !near(got.X, ref[0]) || !near(got.Y, ref[1]) || !near(got.Z, ref[2]) {
		t.Errorf("Rotate = %v, mgl64 = %v", got, ref)
	}

	m := o.Matrix().MulVec3(p)
	if !near(got.X, m.X) || !near(got.Y, m.Y) || !near(got.Z, m.Z) {
		t.Errorf("Rotate = %v, Matrix = %v", got, m)
	}
}

func BenchmarkProject(b *testing.B) {
	pr := NewProjector()
	o := NewOrientation()
	o.Set(0.4, 0.5)
	p := math3d.V3(10, 20, 30)

	for b.Loop() {
		_, _ = pr.Project(p, o, math3d.Vec2{}, 0)
	}
}
