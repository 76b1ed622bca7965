package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// CellWriter receives terminal cells. *uv.Terminal and any uv.Screen
// satisfy it.
type CellWriter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Screen is a CellWriter that can present what was written, such as
// *uv.Terminal.
type Screen interface {
	CellWriter
	Display() error
}

// Draw converts the framebuffer to half-block cells covering area. Each
// cell shows the pixel pair at rows 2*row and 2*row+1.
func (fb *Framebuffer) Draw(scr CellWriter, area uv.Rectangle) {
	// ▀ with fg = top pixel and bg = bottom pixel
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor maps transparent pixels to the terminal default colour.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// labelShade darkens the pixels behind label text.
const labelShade = 0.6

// TerminalRenderer presents a Canvas on a terminal: pixels as half blocks,
// labels as text on top.
type TerminalRenderer struct {
	screen     Screen
	cols, rows int
}

// NewTerminalRenderer creates a renderer for a screen of cols x rows cells.
func NewTerminalRenderer(screen Screen, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, cols: cols, rows: rows}
}

// Resize changes the cell size after the terminal was resized.
func (r *TerminalRenderer) Resize(cols, rows int) {
	r.cols, r.rows = cols, rows
}

// FramebufferSize returns the pixel size matching the terminal.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.cols, r.rows * 2
}

// Render writes the canvas pixels and labels to the screen. Call Flush to
// present them.
func (r *TerminalRenderer) Render(c *Canvas) {
	c.Framebuffer().Draw(r.screen, uv.Rectangle{Max: uv.Position{X: r.cols, Y: r.rows}})
	for _, l := range c.Labels {
		r.label(c.Framebuffer(), l)
	}
}

func (r *TerminalRenderer) label(fb *Framebuffer, l TextLabel) {
	row := l.Y / 2
	if l.Y < 0 || row >= r.rows {
		return
	}
	col := l.X
	for _, ch := range l.Text {
		if col >= r.cols {
			return
		}
		if col >= 0 {
			bg := Dim(fb.GetPixel(col, l.Y), labelShade)
			r.screen.SetCell(col, row, &uv.Cell{
				Content: string(ch),
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(l.Color),
					Bg: rgbaToColor(bg),
				},
			})
		}
		col++
	}
}

// Flush presents everything rendered since the last flush.
func (r *TerminalRenderer) Flush() error {
	return r.screen.Display()
}
