package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/engine"
)

const (
	width       = 78
	height      = 22
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer paints the system onto a plain ANSI canvas for watch
// mode. It keeps its own frame-rate gate so the driver can call it
// every step without flooding the terminal.
type LiveRenderer struct {
	frameRate int
	lastFrame time.Time
	canvas    [][]rune

	// Scale is meters per cell horizontally; cells are about twice as
	// tall as wide, so vertical distances compress by half.
	Scale float64
}

func NewLiveRenderer(frameRate int, scale float64) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		frameRate: frameRate,
		canvas:    canvas,
		Scale:     scale,
	}
}

// OnStep draws a frame if enough wall time has passed since the last.
func (r *LiveRenderer) OnStep(orbiters []engine.IDOrbiter, mode engine.Mode, simTime float64) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	for _, o := range orbiters {
		cx, cy, ok := r.project(o.Orbiter.Kin.Pos[0], o.Orbiter.Kin.Pos[1])
		if !ok {
			continue
		}
		r.set(cx, cy, glyphFor(o.Orbiter.Body.Radius))
	}
	r.render(orbiters, mode, simTime)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) project(mx, my float64) (int, int, bool) {
	x := width/2 + int(mx/r.Scale)
	y := height/2 + int(my/(r.Scale*2))
	return x, y, x >= 0 && x < width && y >= 0 && y < height
}

// glyphFor sizes a body to a rune by the decade of its radius.
func glyphFor(radius float64) rune {
	switch {
	case radius > 1e8:
		return '@'
	case radius > 1e6:
		return 'O'
	case radius > 1e5:
		return 'o'
	default:
		return '.'
	}
}

func (r *LiveRenderer) render(orbiters []engine.IDOrbiter, mode engine.Mode, simTime float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  orrery  %s  t=%s  bodies=%d\n",
		mode, formatDuration(simTime), len(orbiters)))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	names := "  "
	for i, o := range orbiters {
		if i >= 5 {
			names += fmt.Sprintf("(+%d more)", len(orbiters)-5)
			break
		}
		names += fmt.Sprintf("%s ", o.Orbiter.Body.Name)
	}
	b.WriteString(names + "\n")

	fmt.Print(b.String())
}

func (r *LiveRenderer) Start() { fmt.Print(hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Print(showCursor) }

// formatDuration renders simulated seconds as days/hours.
func formatDuration(seconds float64) string {
	days := seconds / 86_400
	if math.Abs(days) >= 1 {
		return fmt.Sprintf("%.1fd", days)
	}
	return fmt.Sprintf("%.1fh", seconds/3_600)
}
