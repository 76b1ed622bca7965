package graph

import (
	"math"
	"slices"
)

// Param is a named numeric parameter that functions may read while they are
// evaluated, typically bound to a slider.
type Param struct {
	Name     string
	From, To float64 // inclusive bounds, ignored when From > To
	Step     float64 // snapping step, 0 for none
	Value    float64
}

// Params is the explicit parameter store captured by function closures.
// Changes are seen by the next redraw since every frame re-evaluates the
// functions from scratch.
type Params struct {
	order  []string
	params map[string]*Param
}

// NewParams creates an empty store.
func NewParams() *Params {
	return &Params{params: make(map[string]*Param)}
}

// Define creates or redefines a parameter and sets it to init.
func (p *Params) Define(name string, from, to, step, init float64) *Param {
	pr, ok := p.params[name]
	if !ok {
		pr = &Param{Name: name}
		p.params[name] = pr
		p.order = append(p.order, name)
	}
	pr.From, pr.To, pr.Step = from, to, step
	pr.Value = pr.constrain(init)
	return pr
}

// Set changes the value of name, defining an unbounded parameter when it
// does not exist. It returns the stored value after clamping and snapping.
func (p *Params) Set(name string, v float64) float64 {
	pr, ok := p.params[name]
	if !ok {
		pr = p.Define(name, 0, -1, 0, v)
		return pr.Value
	}
	pr.Value = pr.constrain(v)
	return pr.Value
}

// Get returns the value of name, or 0 when it is not defined.
func (p *Params) Get(name string) float64 {
	if pr, ok := p.params[name]; ok {
		return pr.Value
	}
	return 0
}

// Lookup returns the parameter definition for name.
func (p *Params) Lookup(name string) (Param, bool) {
	pr, ok := p.params[name]
	if !ok {
		return Param{}, false
	}
	return *pr, true
}

// Names returns parameter names in definition order.
func (p *Params) Names() []string {
	return slices.Clone(p.order)
}

func (pr *Param) bounded() bool {
	return pr.From <= pr.To
}

func (pr *Param) constrain(v float64) float64 {
	if pr.Step > 0 && pr.bounded() {
		v = pr.From + math.Round((v-pr.From)/pr.Step)*pr.Step
	}
	if pr.bounded() {
		v = math.Max(pr.From, math.Min(pr.To, v))
	}
	return v
}
