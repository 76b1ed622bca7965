package export

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/taigrr/surfgraph/pkg/graph"
	"github.com/taigrr/surfgraph/pkg/math3d"
	"github.com/taigrr/surfgraph/pkg/render"
)

const tolerance = 1e-5

func ripple(x, z float64) float64 { return math.Cos(x) * math.Cos(z) }

func newTestGraph() *graph.Graph {
	g := graph.NewGraph()
	g.SetRangeX(-math.Pi, math.Pi)
	g.SetRangeZ(-math.Pi, math.Pi)
	g.InsertFunction("ripple", ripple)
	g.InsertFunction("hidden", ripple)
	g.SetVisible("hidden", false)
	return g
}

func sampled(g *graph.Graph, f graph.Func, half float64) [][]math3d.Vec3 {
	var out [][]math3d.Vec3
	for line := range g.Sampler().Lines(f, half) {
		var pts []math3d.Vec3
		for p := range line {
			pts = append(pts, p)
		}
		out = append(out, pts)
	}
	return out
}

func closeTo(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func TestGLBRoundTrip(t *testing.T) {
	g := newTestGraph()
	path := filepath.Join(t.TempDir(), "ripple.glb")
	if err := WriteGLB(path, g, Options{Half: 50}); err != nil {
		t.Fatalf("WriteGLB: %v", err)
	}

	wires, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(wires) != 1 {
		t.Fatalf("got %d meshes, want 1", len(wires))
	}
	w := wires[0]
	if w.Name != "ripple" {
		t.Errorf("mesh name = %q", w.Name)
	}
	if w.Color != [4]float64{1, 0, 0, 1} {
		t.Errorf("colour = %v, want red", w.Color)
	}

	want := sampled(g, ripple, 50)
	if len(w.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(w.Lines), len(want))
	}
	for i := range want {
		if len(w.Lines[i]) != len(want[i]) {
			t.Fatalf("line %d has %d points, want %d", i, len(w.Lines[i]), len(want[i]))
		}
		for j, p := range want[i] {
			if got := w.Lines[i][j]; !closeTo(got, p.Scale(1.0/50)) {
				t.Errorf("line %d point %d = %v, want %v", i, j, got, p.Scale(1.0/50))
			}
		}
	}
}

func TestBakeView(t *testing.T) {
	g := newTestGraph()
	g.SetOrientation(0.4, -1.1)

	doc, err := Document(g, Options{Half: 20, BakeView: true})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "baked.glb")
	if err := WriteGLB(path, g, Options{Half: 20, BakeView: true}); err != nil {
		t.Fatal(err)
	}
	wires, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Meshes) != len(wires) {
		t.Fatalf("document has %d meshes, file %d", len(doc.Meshes), len(wires))
	}

	p := sampled(g, ripple, 20)[2][7]
	want := g.Orientation().Rotate(p).Scale(1.0 / 20)
	if got := wires[0].Lines[2][7]; !closeTo(got, want) {
		t.Errorf("baked point = %v, want %v", got, want)
	}
}

func TestAxesMesh(t *testing.T) {
	g := graph.NewGraph()
	g.Axes.Y = false
	g.Style.AxisColor = "#00ff00"

	doc, err := Document(g, Options{Axes: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Meshes) != 1 || doc.Meshes[0].Name != AxesMesh {
		t.Fatalf("meshes = %d, want the axes only", len(doc.Meshes))
	}

	path := filepath.Join(t.TempDir(), "axes.glb")
	if err := WriteGLB(path, g, Options{Axes: true}); err != nil {
		t.Fatal(err)
	}
	wires, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(wires[0].Lines); n != 2 {
		t.Errorf("got %d axis lines, want 2", n)
	}
	if wires[0].Color != [4]float64{0, 1, 0, 1} {
		t.Errorf("axis colour = %v", wires[0].Color)
	}
	if got := wires[0].Lines[0][1]; !closeTo(got, math3d.V3(1, 0, 0)) {
		t.Errorf("x axis end = %v, want (1, 0, 0)", got)
	}
}

func TestNothingToExport(t *testing.T) {
	g := graph.NewGraph()
	g.InsertFunction("empty", nil)
	g.InsertFunction("hidden", ripple)
	g.SetVisible("hidden", false)

	if _, err := Document(g, Options{}); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Document = %v, want ErrNothingToExport", err)
	}
}

func TestUnknownColour(t *testing.T) {
	g := graph.NewGraph()
	g.InsertFunction("odd", ripple, "not-a-colour")
	if _, err := Document(g, Options{}); !errors.Is(err, render.ErrUnknownColor) {
		t.Errorf("Document = %v, want ErrUnknownColor", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}
