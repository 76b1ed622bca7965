package graph

import (
	"errors"
	"strings"
	"testing"
)

const setupJSON = `{
	"range_x": {"from": -4, "to": 6, "tick": 2},
	"range_z": {"from": -5, "to": 3, "tick": 3},
	"range_y": {"from": -6, "to": 12},
	"scaling": 0.4,
	"yaw": 0.5,
	"roll": 0.4,
	"x_name": "xx",
	"y_name": "yy",
	"z_name": "zz",
	"sonda": "sputnik"
}`

func TestJSONSetup(t *testing.T) {
	opts, err := ParseOptions(strings.NewReader(setupJSON))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	g, err := NewGraphWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGraphWithOptions: %v", err)
	}

	v := g.View()
	checks := []struct {
		name      string
		got, want float64
	}{
		{"width", v.Extent.Width, 5},
		{"x shift", v.Shift.X, -1},
		{"x tick", v.Tick.X, 2},
		{"depth", v.Extent.Depth, 4},
		{"z shift", v.Shift.Z, 1},
		{"z tick", v.Tick.Z, 3},
		{"height", v.Extent.Height, 9},
		{"y shift", v.Shift.Y, -3},
		{"y tick", v.Tick.Y, 1},
		{"scaling", v.Scale, 0.4},
		{"roll", g.Orientation().Roll(), 0.4},
		{"yaw", g.Orientation().Yaw(), 0.5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if g.Names != (AxisNames{X: "xx", Y: "yy", Z: "zz"}) {
		t.Errorf("names = %+v", g.Names)
	}
	if ext, ok := g.Extension("sonda"); !ok || ext != "sputnik" {
		t.Errorf("extension sonda = %v, %v", ext, ok)
	}
	if _, ok := g.Extension("roll"); ok {
		t.Error("recognised key stored as extension")
	}
}

func TestFunctionSetup(t *testing.T) {
	g := NewGraph()
	g.SetAxisNames("xx", "zz", "yy")
	g.SetRangeY(7, 8, 5)
	g.SetRangeX(1, 1)
	g.SetRangeZ(1, 1)

	if g.Names != (AxisNames{X: "xx", Y: "yy", Z: "zz"}) {
		t.Errorf("names = %+v", g.Names)
	}
	tick := g.View().Tick
	if tick.Y != 5 || tick.X != 1 || tick.Z != 1 {
		t.Errorf("ticks = %v, want (1, 5, 1)", tick)
	}
	if err := g.View().Validate(); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("Validate = %v, want ErrDegenerateRange", err)
	}
}

func TestApplyFlagsAndStyle(t *testing.T) {
	g := NewGraph()
	err := g.Apply(Options{
		"centre":            true,
		"x_axis":            false,
		"z_scaling":         true,
		"background_colour": "navy",
		"axis_font":         "12px mono",
		"screen":            1000,
		"zee":               -50,
		"axisNames":         map[string]any{"y": "height"},
		"rangeX":            map[string]any{"from": 0, "to": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Sampler().Centered || g.Axes.X || !g.Axes.Y || !g.ZScaling {
		t.Errorf("flags not applied: centred %v, axes %+v, z scaling %v",
			g.Sampler().Centered, g.Axes, g.ZScaling)
	}
	if g.Style.Background != "navy" || g.Style.Font != "12px mono" {
		t.Errorf("style = %+v", g.Style)
	}
	if g.Projector().ScreenDistance != 1000 || g.View().Zee != -50 {
		t.Errorf("screen %v, zee %v", g.Projector().ScreenDistance, g.View().Zee)
	}
	if g.Names.Y != "height" || g.Names.X != "X" {
		t.Errorf("names = %+v", g.Names)
	}
	if g.View().Extent.Width != 1 || g.View().Shift.X != -1 {
		t.Errorf("rangeX gave width %v, shift %v", g.View().Extent.Width, g.View().Shift.X)
	}
}

func TestApplyTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"number", Options{"roll": "fast"}},
		{"string", Options{"x_name": 3.0}},
		{"bool", Options{"centre": "yes"}},
		{"range object", Options{"range_x": []any{1.0, 2.0}}},
		{"range bounds", Options{"range_x": map[string]any{"from": 1.0}}},
		{"range tick", Options{"range_y": map[string]any{"from": 1.0, "to": 2.0, "tick": "big"}}},
		{"colours", Options{"colours": []any{"red", 7.0}}},
		{"axis names", Options{"axisNames": map[string]any{"x": true}}},
		{"parameter name", Options{"parameters": []any{map[string]any{"from": 0.0}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewGraph().Apply(tc.opts)
			if !errors.Is(err, ErrOptionType) {
				t.Errorf("Apply = %v, want ErrOptionType", err)
			}
		})
	}
}

func TestApplyColoursAndParameters(t *testing.T) {
	opts, err := ParseOptions(strings.NewReader(`{
		"colours": ["cyan", "magenta"],
		"parameters": [
			{"name": "Amplitude", "from": 0, "to": 2, "step": 0.5},
			{"name": "Phase", "init": 3}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGraphWithOptions(opts)
	if err != nil {
		t.Fatal(err)
	}

	if e := g.InsertFunction("a", nil); e.Color != "cyan" {
		t.Errorf("first colour = %q, want cyan", e.Color)
	}
	if got := g.Params().Get("Amplitude"); got != 1 {
		t.Errorf("Amplitude = %v, want midpoint 1", got)
	}
	if got := g.Params().Set("Amplitude", 1.3); got != 1.5 {
		t.Errorf("Set(Amplitude, 1.3) = %v, want 1.5", got)
	}
	if got := g.Params().Set("Phase", 40); got != 40 {
		t.Errorf("unbounded Phase = %v, want 40", got)
	}
}

func TestParseOptionsError(t *testing.T) {
	if _, err := ParseOptions(strings.NewReader(`{"roll": `)); err == nil {
		t.Error("truncated JSON parsed without error")
	}
}
