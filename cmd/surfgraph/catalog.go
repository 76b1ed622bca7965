package main

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/surfgraph/pkg/graph"
)

// preset is a named function the viewer can plot. build receives the
// parameter store so the function can read sliders at evaluation time.
type preset struct {
	id    string
	about string
	build func(p *graph.Params) graph.Func
}

var catalog = []preset{
	{
		id:    "ripple",
		about: "Amplitude × cos(x) × cos(z + Phase)",
		build: func(p *graph.Params) graph.Func {
			return func(x, z float64) float64 {
				return p.Get("Amplitude") * math.Cos(x) * math.Cos(z+p.Get("Phase"))
			}
		},
	},
	{
		id:    "bell",
		about: "exp(-(x² + z²))",
		build: func(*graph.Params) graph.Func {
			return func(x, z float64) float64 { return math.Exp(-(x*x + z*z)) }
		},
	},
	{
		id:    "saddle",
		about: "x × z / π²",
		build: func(*graph.Params) graph.Func {
			return func(x, z float64) float64 { return x * z / (math.Pi * math.Pi) }
		},
	},
	{
		id:    "sinc",
		about: "sin(r) / r, undefined at the origin",
		build: func(*graph.Params) graph.Func {
			return func(x, z float64) float64 {
				r := math.Hypot(x, z) * 3
				return math.Sin(r) / r
			}
		},
	},
	{
		id:    "wave",
		about: "sin(x + Phase) / 2",
		build: func(p *graph.Params) graph.Func {
			return func(x, z float64) float64 { return math.Sin(x+p.Get("Phase")) / 2 }
		},
	},
}

func lookupPreset(id string) (preset, bool) {
	for _, p := range catalog {
		if p.id == id {
			return p, true
		}
	}
	return preset{}, false
}

// insertPresets adds the comma separated presets to g in order, once each.
func insertPresets(g *graph.Graph, list string) ([]string, error) {
	var ids []string
	for id := range strings.SplitSeq(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p, ok := lookupPreset(id)
		if !ok {
			return nil, fmt.Errorf("unknown function %q", id)
		}
		if slices.Contains(ids, p.id) {
			continue
		}
		g.InsertFunction(p.id, p.build(g.Params()))
		ids = append(ids, p.id)
	}
	return ids, nil
}

// defineParams creates the parameters used by the catalog unless the setup
// file already defined them.
func defineParams(p *graph.Params) {
	if _, ok := p.Lookup("Amplitude"); !ok {
		p.Define("Amplitude", 0, 2, 0.1, 1)
	}
	if _, ok := p.Lookup("Phase"); !ok {
		p.Define("Phase", 0, -1, 0, 0)
	}
}
