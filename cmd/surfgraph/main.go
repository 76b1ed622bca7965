// surfgraph - Terminal Surface Grapher
// Plot y = f(x, z) as a rotating wireframe in your terminal.
//
// Controls:
//
//	Left drag   - Rotate (roll/yaw), keeps spinning when released
//	Right drag  - Pan
//	Scroll      - Zoom (or dolly with -zscale)
//	1-9         - Toggle function
//	X/Y/Z       - Toggle axis
//	C           - Toggle centred grid
//	A/Shift+A   - Raise/lower Amplitude
//	Space       - Start/stop animation
//	R           - Reset view
//	S           - Save PNG snapshot
//	E           - Export GLB
//	?           - Toggle status line
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/surfgraph/pkg/export"
	"github.com/taigrr/surfgraph/pkg/graph"
	"github.com/taigrr/surfgraph/pkg/render"
)

var (
	configPath   = flag.String("config", "", "JSON setup file")
	functionList = flag.String("f", "ripple,bell", "Comma separated functions to plot")
	targetFPS    = flag.Int("fps", 60, "Frame rate for drag inertia")
	bgColor      = flag.String("bg", "#1e1e28", "Background colour (name or #rrggbb, empty to clear)")
	zScale       = flag.Bool("zscale", false, "Scroll dollies the camera instead of zooming")
	animInterval = flag.Duration("anim", 0, "Advance Phase every interval (0 disables)")
	snapshotPath = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	snapshotSize = flag.String("size", "640x400", "Snapshot size in pixels")
	exportPath   = flag.String("export", "", "Write the wireframe to this GLB file and exit")
	listOnly     = flag.Bool("list", false, "List the available functions and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "surfgraph - Terminal Surface Grapher\n\n")
		fmt.Fprintf(os.Stderr, "Usage: surfgraph [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left drag   - Rotate\n")
		fmt.Fprintf(os.Stderr, "  Right drag  - Pan\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom\n")
		fmt.Fprintf(os.Stderr, "  1-9         - Toggle function\n")
		fmt.Fprintf(os.Stderr, "  X/Y/Z       - Toggle axis\n")
		fmt.Fprintf(os.Stderr, "  C           - Toggle centred grid\n")
		fmt.Fprintf(os.Stderr, "  A/Shift+A   - Raise/lower Amplitude\n")
		fmt.Fprintf(os.Stderr, "  Space       - Start/stop animation\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  S/E         - Save PNG / export GLB\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle status line\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q       - Quit\n")
	}
	flag.Parse()

	if *listOnly {
		for i, p := range catalog {
			fmt.Printf("%d. %-8s %s\n", i+1, p.id, p.about)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup builds the graph from the setup file and flags.
func setup() (*graph.Graph, []string, error) {
	g := graph.NewGraph()
	g.SetRangeX(-3, 3)
	g.SetRangeZ(-3, 3)
	g.SetOrientation(0.5, 0.6)
	g.Style.Background = *bgColor
	g.Style.Font = "12px mono"
	g.ZScaling = *zScale

	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open config: %w", err)
		}
		opts, err := graph.ParseOptions(f)
		f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", *configPath, err)
		}
		if err := g.Apply(opts); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", *configPath, err)
		}
	}
	if err := g.View().Validate(); err != nil {
		return nil, nil, err
	}
	if g.Style.Background != "" {
		if _, err := render.ParseColor(g.Style.Background); err != nil {
			return nil, nil, fmt.Errorf("background: %w", err)
		}
	}

	defineParams(g.Params())
	ids, err := insertPresets(g, *functionList)
	if err != nil {
		return nil, nil, err
	}
	return g, ids, nil
}

// advancePhase is the animation step.
func advancePhase(g *graph.Graph) func() {
	return func() {
		g.Params().Set("Phase", g.Params().Get("Phase")+0.1)
	}
}

func run() error {
	g, ids, err := setup()
	if err != nil {
		return err
	}

	if *exportPath != "" {
		return export.WriteGLB(*exportPath, g, export.Options{BakeView: true, Axes: true})
	}
	if *snapshotPath != "" {
		w, h, err := parseSize(*snapshotSize)
		if err != nil {
			return err
		}
		return snapshot(g, *snapshotPath, w, h)
	}
	return view(g, ids)
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: must be positive", s)
	}
	return w, h, nil
}

func snapshot(g *graph.Graph, path string, w, h int) error {
	c := render.NewCanvas(w, h)
	g.Draw(c)
	if err := c.Framebuffer().SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// mouse pointer movement per cell, in the pixel units drags are tuned for
const (
	cellPixelsX = 8
	cellPixelsY = 16
	wheelNotch  = 3
)

func view(g *graph.Graph, ids []string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	canvas := render.NewCanvas(termRenderer.FramebufferSize())
	hud := NewHUD(ids)

	controller := graph.NewController(g)
	controller.Inertia = graph.NewInertia(*targetFPS)

	var flushErr error
	g.OnRedraw(func() {
		canvas.Reset()
		g.Draw(canvas)
		hud.UpdateFPS()
		hud.Overlay(canvas, g)
		termRenderer.Render(canvas)
		if err := termRenderer.Flush(); err != nil && flushErr == nil {
			flushErr = fmt.Errorf("flush: %w", err)
		}
	})

	startAnimation := func() {
		interval := *animInterval
		if interval <= 0 {
			interval = 50 * time.Millisecond
		}
		g.StartAnimation(interval, advancePhase(g))
	}
	if *animInterval > 0 {
		startAnimation()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cleanup := func() {
		g.StopAnimation()
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	frames := time.NewTicker(time.Second / time.Duration(max(*targetFPS, 1)))
	defer frames.Stop()

	// Mouse state
	var buttons int
	var lastX, lastY int

	g.RequestRedraw()
	for {
		// A nil channel blocks, so the case is inert without an animation.
		var ticks <-chan time.Time
		if a := g.Animation(); a != nil {
			ticks = a.C()
		}

		select {
		case <-ctx.Done():
			return flushErr

		case <-ticks:
			g.Animation().Fire()

		case <-frames.C:
			if controller.Step() {
				g.RequestRedraw()
			}

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer.Resize(width, height)
				canvas.Resize(termRenderer.FramebufferSize())
				g.RequestRedraw()

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "q", "ctrl+c"):
					cancel()
				case ev.MatchString("x"):
					g.Axes.X = !g.Axes.X
				case ev.MatchString("y"):
					g.Axes.Y = !g.Axes.Y
				case ev.MatchString("z"):
					g.Axes.Z = !g.Axes.Z
				case ev.MatchString("c"):
					g.SetCentered(!g.Sampler().Centered)
				case ev.MatchString("a"):
					g.Params().Set("Amplitude", g.Params().Get("Amplitude")+0.1)
				case ev.MatchString("shift+a"), ev.MatchString("A"):
					g.Params().Set("Amplitude", g.Params().Get("Amplitude")-0.1)
				case ev.MatchString("space"):
					if g.Animation() != nil {
						g.StopAnimation()
					} else {
						startAnimation()
					}
				case ev.MatchString("r"):
					controller.Inertia.Stop()
					g.SetOrientation(0.5, 0.6)
					g.View().PanX, g.View().PanY = 0, 0
					g.View().Scale, g.View().Zee = 1, 0
				case ev.MatchString("s"):
					if err := snapshot(g, "surfgraph.png", width*cellPixelsX, height*cellPixelsY); err != nil {
						return err
					}
				case ev.MatchString("e"):
					if err := export.WriteGLB("surfgraph.glb", g, export.Options{BakeView: true, Axes: true}); err != nil {
						return err
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					hud.show = !hud.show
				default:
					if i, ok := functionKey(ev.Text, len(ids)); ok {
						g.Registry().Toggle(ids[i])
					}
				}
				g.RequestRedraw()

			case uv.MouseClickEvent:
				switch ev.Button {
				case uv.MouseLeft:
					buttons = graph.ButtonPrimary
				case uv.MouseRight:
					buttons = graph.ButtonSecondary
				default:
					buttons = 0
				}
				lastX, lastY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				if buttons == graph.ButtonPrimary {
					controller.Release()
				}
				buttons = 0

			case uv.MouseMotionEvent:
				if buttons == 0 {
					break
				}
				controller.Drag(graph.DragEvent{
					Buttons: buttons,
					DX:      float64((ev.X - lastX) * cellPixelsX),
					DY:      float64((ev.Y - lastY) * cellPixelsY),
				})
				lastX, lastY = ev.X, ev.Y

			case uv.MouseWheelEvent:
				var delta float64
				switch ev.Button {
				case uv.MouseWheelUp:
					delta = -wheelNotch
				case uv.MouseWheelDown:
					delta = wheelNotch
				}
				controller.Wheel(graph.WheelEvent{DeltaY: delta})
			}
		}

		if flushErr != nil {
			return flushErr
		}
	}
}

// functionKey maps the keys 1-9 to a function index below n.
func functionKey(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	return i, i < n
}
