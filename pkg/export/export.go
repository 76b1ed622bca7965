// Package export writes the wireframe of a graph as glTF line geometry.
package export

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/surfgraph/pkg/graph"
	"github.com/taigrr/surfgraph/pkg/math3d"
	"github.com/taigrr/surfgraph/pkg/render"
)

// ErrNothingToExport is returned when no visible function or axis produced
// a line.
var ErrNothingToExport = errors.New("nothing to export")

// AxesMesh names the mesh holding the axis lines.
const AxesMesh = "axes"

// Options controls an export.
type Options struct {
	// Half is the surface half width the wireframe is sampled for; Draw
	// uses half the surface width. Defaults to 100.
	Half float64

	// BakeView rotates the geometry by the current roll and yaw so the
	// model opens the way the graph is shown.
	BakeView bool

	// Axes includes the enabled axes as an extra mesh.
	Axes bool
}

func (o Options) half() float64 {
	if o.Half > 0 {
		return o.Half
	}
	return 100
}

// Document builds a glTF document with one line mesh per visible function,
// in drawing order. Coordinates are divided by the half width so the model
// spans [-1, 1] on X and Z.
func Document(g *graph.Graph, opts Options) (*gltf.Document, error) {
	half := opts.half()
	b := &builder{
		doc:  gltf.NewDocument(),
		unit: 1 / half,
	}
	if opts.BakeView {
		m := g.Orientation().Matrix()
		b.transform = &m
	}

	if opts.Axes {
		o := g.View().Origin(half)
		var lines [][]math3d.Vec3
		if g.Axes.X {
			lines = append(lines, []math3d.Vec3{math3d.V3(-half, o.Y, o.Z), math3d.V3(half, o.Y, o.Z)})
		}
		if g.Axes.Y {
			lines = append(lines, []math3d.Vec3{math3d.V3(o.X, -half, o.Z), math3d.V3(o.X, half, o.Z)})
		}
		if g.Axes.Z {
			lines = append(lines, []math3d.Vec3{math3d.V3(o.X, o.Y, -half), math3d.V3(o.X, o.Y, half)})
		}
		if err := b.mesh(AxesMesh, g.Style.AxisColor, lines); err != nil {
			return nil, err
		}
	}

	for e := range g.Registry().Entries() {
		if !e.Visible || e.Func == nil {
			continue
		}
		var lines [][]math3d.Vec3
		for line := range g.Sampler().Lines(e.Func, half) {
			var pts []math3d.Vec3
			for p := range line {
				pts = append(pts, p)
			}
			lines = append(lines, pts)
		}
		if err := b.mesh(e.ID, e.StrokeColor(), lines); err != nil {
			return nil, err
		}
	}

	if b.meshes == 0 {
		return nil, ErrNothingToExport
	}
	return b.doc, nil
}

// WriteGLB samples g and saves it as a binary glTF file.
func WriteGLB(path string, g *graph.Graph, opts Options) error {
	doc, err := Document(g, opts)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tracer().Infof("exported %d meshes to %s", len(doc.Meshes), path)
	return nil
}

type builder struct {
	doc       *gltf.Document
	unit      float64
	transform *math3d.Mat4
	meshes    int
}

// mesh adds a node with a single LINES primitive. Polylines with fewer than
// two points are skipped, and so is a mesh without segments.
func (b *builder) mesh(name, token string, lines [][]math3d.Vec3) error {
	var (
		positions [][3]float32
		indices   []uint32
	)
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		base := uint32(len(positions))
		for i, p := range line {
			positions = append(positions, b.vertex(p))
			if i > 0 {
				indices = append(indices, base+uint32(i)-1, base+uint32(i))
			}
		}
	}
	if len(indices) == 0 {
		tracer().Debugf("export: %q has no segments", name)
		return nil
	}

	c, err := render.ParseColor(token)
	if err != nil {
		return fmt.Errorf("mesh %q: %w", name, err)
	}

	doc := b.doc
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
				1,
			},
		},
	})
	material := len(doc.Materials) - 1

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitiveLines,
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)},
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Material:   gltf.Index(material),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	b.meshes++
	return nil
}

func (b *builder) vertex(p math3d.Vec3) [3]float32 {
	if b.transform != nil {
		p = b.transform.MulVec3(p)
	}
	p = p.Scale(b.unit)
	return [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
}
