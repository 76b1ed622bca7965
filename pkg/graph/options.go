package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// ErrOptionType is returned when a recognised option has a value of the
// wrong type.
var ErrOptionType = errors.New("option has wrong type")

// Options is a setup bag, usually decoded from JSON. Recognised keys are
// applied through typed setters; every other key is kept as an extension
// attribute of the graph.
type Options map[string]any

// ParseOptions decodes a JSON object into Options.
func ParseOptions(r io.Reader) (Options, error) {
	var opts Options
	if err := json.NewDecoder(r).Decode(&opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}

// NewGraphWithOptions creates a graph and applies opts to it.
func NewGraphWithOptions(opts Options) (*Graph, error) {
	g := NewGraph()
	if err := g.Apply(opts); err != nil {
		return nil, err
	}
	return g, nil
}

type setter func(g *Graph, v any) error

var setters = map[string]setter{
	"range_x":           rangeSetter((*View).SetRangeX),
	"range_y":           rangeSetter((*View).SetRangeY),
	"range_z":           rangeSetter((*View).SetRangeZ),
	"rangeX":            rangeSetter((*View).SetRangeX),
	"rangeY":            rangeSetter((*View).SetRangeY),
	"rangeZ":            rangeSetter((*View).SetRangeZ),
	"roll":              floatSetter(func(g *Graph, f float64) { g.orientation.SetRoll(f) }),
	"yaw":               floatSetter(func(g *Graph, f float64) { g.orientation.SetYaw(f) }),
	"scaling":           floatSetter(func(g *Graph, f float64) { g.view.Scale = f }),
	"screen":            floatSetter(func(g *Graph, f float64) { g.projector.ScreenDistance = f }),
	"zee":               floatSetter(func(g *Graph, f float64) { g.view.Zee = f }),
	"x_name":            stringSetter(func(g *Graph, s string) { g.Names.X = s }),
	"y_name":            stringSetter(func(g *Graph, s string) { g.Names.Y = s }),
	"z_name":            stringSetter(func(g *Graph, s string) { g.Names.Z = s }),
	"background_colour": stringSetter(func(g *Graph, s string) { g.Style.Background = s }),
	"axis_font":         stringSetter(func(g *Graph, s string) { g.Style.Font = s }),
	"centre":            boolSetter(func(g *Graph, b bool) { g.sampler.Centered = b }),
	"x_axis":            boolSetter(func(g *Graph, b bool) { g.Axes.X = b }),
	"y_axis":            boolSetter(func(g *Graph, b bool) { g.Axes.Y = b }),
	"z_axis":            boolSetter(func(g *Graph, b bool) { g.Axes.Z = b }),
	"z_scaling":         boolSetter(func(g *Graph, b bool) { g.ZScaling = b }),
	"axisNames":         setAxisNames,
	"colours":           setColours,
	"parameters":        setParameters,
}

// Apply runs the setter of every recognised key in opts, in key order.
// Unrecognised keys are stored as extensions. The first type mismatch stops
// the walk and is returned.
func (g *Graph) Apply(opts Options) error {
	for _, key := range slices.Sorted(maps.Keys(opts)) {
		v := opts[key]
		set, ok := setters[key]
		if !ok {
			g.extensions[key] = v
			continue
		}
		if err := set(g, v); err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func typeError(want string, v any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrOptionType, want, v)
}

func floatSetter(fn func(*Graph, float64)) setter {
	return func(g *Graph, v any) error {
		f, ok := toFloat(v)
		if !ok {
			return typeError("number", v)
		}
		fn(g, f)
		return nil
	}
}

func stringSetter(fn func(*Graph, string)) setter {
	return func(g *Graph, v any) error {
		s, ok := v.(string)
		if !ok {
			return typeError("string", v)
		}
		fn(g, s)
		return nil
	}
}

func boolSetter(fn func(*Graph, bool)) setter {
	return func(g *Graph, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeError("bool", v)
		}
		fn(g, b)
		return nil
	}
}

// rangeSetter accepts {"from": n, "to": n, "tick": n}; tick is optional.
func rangeSetter(set func(v *View, from, to float64, tick ...float64)) setter {
	return func(g *Graph, v any) error {
		m, ok := v.(map[string]any)
		if !ok {
			return typeError("object", v)
		}
		from, ok1 := toFloat(m["from"])
		to, ok2 := toFloat(m["to"])
		if !ok1 || !ok2 {
			return typeError("numeric from and to", v)
		}
		if t, ok := m["tick"]; ok && t != nil {
			tick, ok := toFloat(t)
			if !ok {
				return typeError("numeric tick", t)
			}
			set(g.view, from, to, tick)
			return nil
		}
		set(g.view, from, to)
		return nil
	}
}

// setAxisNames accepts {"x": s, "y": s, "z": s}; missing names are kept.
func setAxisNames(g *Graph, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return typeError("object", v)
	}
	for axis, dst := range map[string]*string{"x": &g.Names.X, "y": &g.Names.Y, "z": &g.Names.Z} {
		raw, ok := m[axis]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return typeError("string name for "+axis, raw)
		}
		*dst = s
	}
	return nil
}

// setColours replaces the palette used for functions without a colour.
func setColours(g *Graph, v any) error {
	list, ok := v.([]any)
	if !ok {
		return typeError("array", v)
	}
	colors := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return typeError("string colour", item)
		}
		colors = append(colors, s)
	}
	g.registry.Palette().Reset(colors...)
	return nil
}

// setParameters defines parameters from
// [{"name": s, "from": n, "to": n, "step": n, "init": n}, ...].
// Missing bounds leave the parameter unbounded.
func setParameters(g *Graph, v any) error {
	list, ok := v.([]any)
	if !ok {
		return typeError("array", v)
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return typeError("parameter object", item)
		}
		name, ok := m["name"].(string)
		if !ok || name == "" {
			return typeError("parameter name", m["name"])
		}
		from, okFrom := toFloat(m["from"])
		to, okTo := toFloat(m["to"])
		if !okFrom || !okTo {
			from, to = 0, -1
		}
		step, _ := toFloat(m["step"])
		init, okInit := toFloat(m["init"])
		if !okInit && okFrom && okTo {
			init = (from + to) / 2
		}
		g.params.Define(name, from, to, step, init)
	}
	return nil
}
