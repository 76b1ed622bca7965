package render

import (
	"image/color"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/taigrr/surfgraph/pkg/graph"
)

func tracer() tracing.Trace {
	return tracing.Select("render")
}

// affine is a scale followed by a translation, the only transforms a frame
// uses.
type affine struct {
	tx, ty float64
	sx, sy float64
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.tx + m.sx*x, m.ty + m.sy*y
}

type canvasState struct {
	m         affine
	stroke    color.RGBA
	fill      color.RGBA
	lineWidth float64
	font      string
}

func defaultState() canvasState {
	black := color.RGBA{A: 255}
	return canvasState{
		m:         affine{sx: 1, sy: 1},
		stroke:    black,
		fill:      black,
		lineWidth: 1,
		font:      "10px sans-serif",
	}
}

// TextLabel is text placed by FillText, in framebuffer pixels. The
// framebuffer holds no glyphs; the terminal renderer overlays labels as
// characters.
type TextLabel struct {
	Text  string
	X, Y  int
	Color color.RGBA
	Font  string
}

// Canvas draws the command stream of a graph frame into a Framebuffer.
// It implements graph.Surface.
//
// Lines are one pixel wide whatever the line width. A LineTo on an empty
// path only moves the pen.
type Canvas struct {
	fb     *Framebuffer
	cur    canvasState
	stack  []canvasState
	path   [][2]int
	Labels []TextLabel
}

var _ graph.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas over a new framebuffer of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		fb:  NewFramebuffer(width, height),
		cur: defaultState(),
	}
}

// Framebuffer returns the pixels drawn so far.
func (c *Canvas) Framebuffer() *Framebuffer {
	return c.fb
}

// Resize replaces the framebuffer and resets the canvas.
func (c *Canvas) Resize(width, height int) {
	c.fb = NewFramebuffer(width, height)
	c.Reset()
}

// Reset drops labels, the path and the state stack. Pixels are kept.
func (c *Canvas) Reset() {
	c.cur = defaultState()
	c.stack = c.stack[:0]
	c.path = c.path[:0]
	c.Labels = c.Labels[:0]
}

func (c *Canvas) Width() float64 {
	return float64(c.fb.Width)
}

func (c *Canvas) Height() float64 {
	return float64(c.fb.Height)
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

// Restore pops the state pushed by Save. Without a saved state it does
// nothing.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.cur = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.cur.m.tx += c.cur.m.sx * x
	c.cur.m.ty += c.cur.m.sy * y
}

func (c *Canvas) Scale(x, y float64) {
	c.cur.m.sx *= x
	c.cur.m.sy *= y
}

func (c *Canvas) SetLineWidth(w float64) {
	c.cur.lineWidth = w
}

func (c *Canvas) SetFont(font string) {
	c.cur.font = font
}

// SetStrokeColor sets the line colour. Unknown tokens keep the current
// colour.
func (c *Canvas) SetStrokeColor(token string) {
	if col, ok := c.parse(token); ok {
		c.cur.stroke = col
	}
}

// SetFillColor sets the colour of rectangles and text. Unknown tokens keep
// the current colour.
func (c *Canvas) SetFillColor(token string) {
	if col, ok := c.parse(token); ok {
		c.cur.fill = col
	}
}

func (c *Canvas) parse(token string) (color.RGBA, bool) {
	col, err := ParseColor(token)
	if err != nil {
		tracer().Debugf("canvas: %v", err)
		return color.RGBA{}, false
	}
	return col, true
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.rect(x, y, w, h, color.RGBA{})
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.rect(x, y, w, h, c.cur.fill)
}

func (c *Canvas) rect(x, y, w, h float64, col color.RGBA) {
	x0, y0 := c.cur.m.apply(x, y)
	x1, y1 := c.cur.m.apply(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	ix, iy := round(x0), round(y0)
	c.fb.FillRect(ix, iy, round(x1)-ix, round(y1)-iy, col)
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *Canvas) LineTo(x, y float64) {
	dx, dy := c.cur.m.apply(x, y)
	if !finite(dx) || !finite(dy) {
		return
	}
	c.path = append(c.path, [2]int{round(dx), round(dy)})
}

// Stroke draws the current path. The path is kept until the next
// BeginPath.
func (c *Canvas) Stroke() {
	for i := 1; i < len(c.path); i++ {
		a, b := c.path[i-1], c.path[i]
		c.fb.DrawLine(a[0], a[1], b[0], b[1], c.cur.stroke)
	}
}

func (c *Canvas) FillText(text string, x, y float64) {
	dx, dy := c.cur.m.apply(x, y)
	if !finite(dx) || !finite(dy) {
		return
	}
	c.Labels = append(c.Labels, TextLabel{
		Text:  text,
		X:     round(dx),
		Y:     round(dy),
		Color: c.cur.fill,
		Font:  c.cur.font,
	})
}

// round converts a device coordinate to a pixel index. Coordinates beyond
// the int32 range are pinned there so that far away points stay far away.
func round(v float64) int {
	const limit = math.MaxInt32
	return int(math.Max(-limit, math.Min(limit, math.Round(v))))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
