package graph

import (
	"fmt"
	"strings"
)

// Surface is the 2D drawing target of a frame, modelled on a canvas 2D
// context.
//
// LineTo on a path with no current point starts the path at that point.
type Surface interface {
	BeginPath()
	LineTo(x, y float64)
	Stroke()
	FillText(text string, x, y float64)
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	Save()
	Restore()
	Translate(x, y float64)
	Scale(x, y float64)
	SetStrokeColor(color string)
	SetFillColor(color string)
	SetLineWidth(w float64)
	SetFont(font string)
	Width() float64
	Height() float64
}

// Op identifies a recorded drawing call.
type Op int

const (
	OpBeginPath Op = iota
	OpLineTo
	OpStroke
	OpFillText
	OpClearRect
	OpFillRect
	OpSave
	OpRestore
	OpTranslate
	OpScale
	OpSetStrokeColor
	OpSetFillColor
	OpSetLineWidth
	OpSetFont
)

var opNames = [...]string{
	OpBeginPath:      "beginPath",
	OpLineTo:         "lineTo",
	OpStroke:         "stroke",
	OpFillText:       "fillText",
	OpClearRect:      "clearRect",
	OpFillRect:       "fillRect",
	OpSave:           "save",
	OpRestore:        "restore",
	OpTranslate:      "translate",
	OpScale:          "scale",
	OpSetStrokeColor: "strokeStyle",
	OpSetFillColor:   "fillStyle",
	OpSetLineWidth:   "lineWidth",
	OpSetFont:        "font",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Command is one recorded drawing call.
type Command struct {
	Op   Op
	Args []float64
	Text string // text, colour or font argument
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	b.WriteByte('(')
	if c.Text != "" {
		fmt.Fprintf(&b, "%q", c.Text)
		if len(c.Args) > 0 {
			b.WriteString(", ")
		}
	}
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", a)
	}
	b.WriteByte(')')
	return b.String()
}

// Recorder is a Surface that keeps the command stream instead of drawing.
type Recorder struct {
	W, H     float64
	Commands []Command
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) add(op Op, text string, args ...float64) {
	r.Commands = append(r.Commands, Command{Op: op, Text: text, Args: args})
}

func (r *Recorder) BeginPath() {
	r.add(OpBeginPath, "")
}

func (r *Recorder) LineTo(x, y float64) {
	r.add(OpLineTo, "", x, y)
}

func (r *Recorder) Stroke() {
	r.add(OpStroke, "")
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.add(OpFillText, text, x, y)
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.add(OpClearRect, "", x, y, w, h)
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(OpFillRect, "", x, y, w, h)
}

func (r *Recorder) Save() {
	r.add(OpSave, "")
}

func (r *Recorder) Restore() {
	r.add(OpRestore, "")
}

func (r *Recorder) Translate(x, y float64) {
	r.add(OpTranslate, "", x, y)
}

func (r *Recorder) Scale(x, y float64) {
	r.add(OpScale, "", x, y)
}

func (r *Recorder) SetStrokeColor(color string) {
	r.add(OpSetStrokeColor, color)
}

func (r *Recorder) SetFillColor(color string) {
	r.add(OpSetFillColor, color)
}

func (r *Recorder) SetLineWidth(w float64) {
	r.add(OpSetLineWidth, "", w)
}

func (r *Recorder) SetFont(font string) {
	r.add(OpSetFont, font)
}

func (r *Recorder) Width() float64 {
	return r.W
}

func (r *Recorder) Height() float64 {
	return r.H
}

// Reset drops the recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Count returns how many commands with op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Paths splits the recorded stream into stroked paths, each a list of
// LineTo points, together with the stroke colour in effect.
func (r *Recorder) Paths() []RecordedPath {
	var (
		out    []RecordedPath
		cur    *RecordedPath
		stroke string
	)
	for _, c := range r.Commands {
		switch c.Op {
		case OpSetStrokeColor:
			stroke = c.Text
		case OpBeginPath:
			cur = &RecordedPath{}
		case OpLineTo:
			if cur != nil {
				cur.Points = append(cur.Points, [2]float64{c.Args[0], c.Args[1]})
			}
		case OpStroke:
			if cur != nil {
				cur.Color = stroke
				out = append(out, *cur)
				cur = nil
			}
		}
	}
	return out
}

// RecordedPath is a stroked path reconstructed from a command stream.
type RecordedPath struct {
	Color  string
	Points [][2]float64
}
