package export

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/surfgraph/pkg/math3d"
)

// Wire is one exported mesh read back as polylines.
type Wire struct {
	Name  string
	Color [4]float64
	Lines [][]math3d.Vec3
}

// Load reads the line meshes of a glTF or GLB file. Segments that continue
// where the previous one ended are joined into one polyline. Primitives of
// any other mode are skipped.
func Load(path string) ([]Wire, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var wires []Wire
	for _, m := range doc.Meshes {
		w, err := readWire(doc, m)
		if err != nil {
			return nil, fmt.Errorf("read mesh %q: %w", m.Name, err)
		}
		wires = append(wires, w)
	}
	return wires, nil
}

func readWire(doc *gltf.Document, m *gltf.Mesh) (Wire, error) {
	w := Wire{Name: m.Name, Color: [4]float64{1, 1, 1, 1}}
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveLines {
			continue
		}
		if prim.Material != nil {
			if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
				w.Color = *pbr.BaseColorFactor
			}
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return w, fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return w, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		last := -1
		for i := 0; i+1 < len(indices); i += 2 {
			a, b := indices[i], indices[i+1]
			if a >= len(positions) || b >= len(positions) {
				return w, fmt.Errorf("index %d out of range", max(a, b))
			}
			if a != last {
				w.Lines = append(w.Lines, []math3d.Vec3{positions[a]})
			}
			n := len(w.Lines) - 1
			w.Lines[n] = append(w.Lines[n], positions[b])
			last = b
		}
	}
	return w, nil
}

// readVec3Accessor reads float VEC3 data from an accessor.
func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorData(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("accessor overruns its buffer")
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads an unsigned SCALAR accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	accessor := doc.Accessors[idx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorData(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+size > len(data) {
			return nil, fmt.Errorf("accessor overruns its buffer")
		}
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorData returns the embedded buffer behind an accessor with the
// offset of its first element and the element stride.
func accessorData(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no embedded data", view.Buffer)
	}

	stride = view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, view.ByteOffset + accessor.ByteOffset, stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
