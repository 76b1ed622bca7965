package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/taigrr/surfgraph/pkg/graph"
	"github.com/taigrr/surfgraph/pkg/render"
)

// HUD is the status line at the bottom of the screen.
type HUD struct {
	ids       []string
	show      bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	fg        color.RGBA
}

// NewHUD creates a HUD listing the functions in ids.
func NewHUD(ids []string) *HUD {
	return &HUD{
		ids:     ids,
		show:    true,
		fpsTime: time.Now(),
		fg:      render.MustParseColor("silver"),
	}
}

// UpdateFPS counts a frame; call once per redraw.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Line returns the status text for g.
func (h *HUD) Line(g *graph.Graph) string {
	var b strings.Builder
	for i, id := range h.ids {
		mark := " "
		if g.Registry().Visible(id) {
			mark = "✓"
		}
		fmt.Fprintf(&b, "[%d%s] %s  ", i+1, mark, id)
	}
	o := g.Orientation()
	fmt.Fprintf(&b, "roll %.2f  yaw %.2f  zoom %.2f  %.0f fps",
		o.Roll(), o.Yaw(), g.View().Scale, h.fps)
	return b.String()
}

// Overlay adds the status line to the labels of c, on the last terminal
// row.
func (h *HUD) Overlay(c *render.Canvas, g *graph.Graph) {
	if !h.show {
		return
	}
	fb := c.Framebuffer()
	c.Labels = append(c.Labels, render.TextLabel{
		Text:  h.Line(g),
		X:     0,
		Y:     fb.Height - 1,
		Color: h.fg,
	})
}
