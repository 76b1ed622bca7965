package graph

// DefaultColors is the palette handed out to functions inserted without a
// colour.
var DefaultColors = []string{
	"red", "green", "yellow", "lime", "fuchsia",
	"teal", "orange", "aqua", "maroon", "olive",
	"white", "purple", "silver", "gold",
}

// Palette hands out colour tokens front to back and starts over from the
// first token once every token has been used.
type Palette struct {
	colors []string
	next   int
}

// NewPalette creates a palette over a copy of colors.
func NewPalette(colors ...string) *Palette {
	return &Palette{colors: append([]string(nil), colors...)}
}

// Next returns the next colour token. An empty palette returns "".
func (p *Palette) Next() string {
	if len(p.colors) == 0 {
		return ""
	}
	c := p.colors[p.next%len(p.colors)]
	p.next++
	return c
}

// Remaining returns how many tokens are left before the palette wraps.
func (p *Palette) Remaining() int {
	if len(p.colors) == 0 {
		return 0
	}
	return len(p.colors) - p.next%len(p.colors)
}

// Reset replaces the tokens and starts from the first one.
func (p *Palette) Reset(colors ...string) {
	p.colors = append(p.colors[:0], colors...)
	p.next = 0
}
