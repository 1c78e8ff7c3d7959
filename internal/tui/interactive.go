package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/engine"
	"github.com/san-kum/orrery/internal/metrics"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	rewindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const (
	viewWidth    = 78
	viewHeight   = 20
	sparkSamples = 60
)

type tickMsg time.Time

// Model drives the interactive viewer. It owns the system and advances
// it on ticks; while a snapshot is being viewed the system refuses to
// advance, so ticks only repaint.
type Model struct {
	sys *engine.System
	dt  float64

	// stepsPerTick controls time flow, 0 pauses.
	stepsPerTick int

	// View transform. Focus follows a body when focusID is set.
	scale   float64
	panX    float64
	panY    float64
	focus   int
	focused bool

	width  int
	height int

	simTime float64
	kinetic []float64

	quitting bool
}

func NewModel(sys *engine.System, dt, scale float64) Model {
	return Model{
		sys:          sys,
		dt:           dt,
		stepsPerTick: 1,
		scale:        scale,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.sys.Mode().Kind == engine.Simulating {
			for i := 0; i < m.stepsPerTick; i++ {
				m.sys.Update(m.dt)
				m.simTime += m.dt
			}
			ke := metrics.KineticEnergy(m.sys.Orbiters())
			m.kinetic = append(m.kinetic, ke)
			if len(m.kinetic) > sparkSamples {
				m.kinetic = m.kinetic[1:]
			}
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panStep := m.scale * 6

	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.sys.Mode().Kind == engine.Simulating {
			m.sys.EnableLoad()
		} else {
			m.sys.ExitLoad()
		}

	case ";":
		if m.sys.Mode().Kind == engine.ViewingSnapshot {
			m.sys.ChangeLoad(-1)
		}
	case "'":
		if m.sys.Mode().Kind == engine.ViewingSnapshot {
			m.sys.ChangeLoad(1)
		}

	case "[":
		if m.stepsPerTick > 0 {
			m.stepsPerTick--
		}
	case "]":
		if m.stepsPerTick < 256 {
			if m.stepsPerTick == 0 {
				m.stepsPerTick = 1
			} else {
				m.stepsPerTick *= 2
			}
		}

	case "w":
		m.panY -= panStep
		m.focused = false
	case "s":
		m.panY += panStep
		m.focused = false
	case "a":
		m.panX -= panStep
		m.focused = false
	case "d":
		m.panX += panStep
		m.focused = false

	case "q", "+", "=":
		m.scale /= 1.5
	case "z", "-":
		m.scale *= 1.5

	case "right", "down":
		m.cycleFocus(1)
	case "left", "up":
		m.cycleFocus(-1)

	case " ":
		m.panX, m.panY = 0, 0
		m.focused = false
	}
	return m, nil
}

func (m *Model) cycleFocus(dir int) {
	orbiters := m.sys.Orbiters()
	if len(orbiters) == 0 {
		return
	}
	if !m.focused {
		m.focused = true
		m.focus = 0
		return
	}
	m.focus = (m.focus + dir + len(orbiters)) % len(orbiters)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	orbiters := m.sys.Orbiters()

	cx, cy := m.panX, m.panY
	var focusName string
	if m.focused && m.focus < len(orbiters) {
		o := orbiters[m.focus]
		cx, cy = o.Orbiter.Kin.Pos[0], o.Orbiter.Kin.Pos[1]
		focusName = o.Orbiter.Body.Name
	}

	canvas := make([][]rune, viewHeight)
	for i := range canvas {
		canvas[i] = make([]rune, viewWidth)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	for _, o := range orbiters {
		x := viewWidth/2 + int((o.Orbiter.Kin.Pos[0]-cx)/m.scale)
		y := viewHeight/2 + int((o.Orbiter.Kin.Pos[1]-cy)/(m.scale*2))
		if x >= 0 && x < viewWidth && y >= 0 && y < viewHeight {
			canvas[y][x] = glyphFor(o.Orbiter.Body.Radius)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("orrery") + "  " + m.statusLine(orbiters, focusName) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", viewWidth)) + "\n")
	for _, row := range canvas {
		b.WriteString(string(row) + "\n")
	}
	b.WriteString(dimStyle.Render(strings.Repeat("─", viewWidth)) + "\n")

	if len(m.kinetic) >= 2 {
		b.WriteString(dimStyle.Render("kinetic energy") + "\n")
		b.WriteString(asciigraph.Plot(m.kinetic,
			asciigraph.Height(5),
			asciigraph.Width(viewWidth-10)) + "\n")
	}

	b.WriteString(m.helpLine() + "\n")
	return b.String()
}

func (m Model) statusLine(orbiters []engine.IDOrbiter, focusName string) string {
	mode := m.sys.Mode()
	var parts []string

	if mode.Kind == engine.ViewingSnapshot {
		parts = append(parts, rewindStyle.Render(
			fmt.Sprintf("REWIND %d/%d", mode.Snapshot+1, m.sys.HistoryLen())))
	} else if m.stepsPerTick == 0 {
		parts = append(parts, warnStyle.Render("PAUSED"))
	} else {
		parts = append(parts, valueStyle.Render(fmt.Sprintf("x%d", m.stepsPerTick)))
	}

	parts = append(parts,
		labelStyle.Render("t=")+valueStyle.Render(formatDuration(m.simTime)),
		labelStyle.Render("bodies=")+valueStyle.Render(fmt.Sprintf("%d", len(orbiters))),
	)
	if m.sys.Merges() > 0 {
		parts = append(parts, labelStyle.Render("merges=")+valueStyle.Render(fmt.Sprintf("%d", m.sys.Merges())))
	}
	parts = append(parts, labelStyle.Render("scale=")+valueStyle.Render(formatScale(m.scale)))
	if focusName != "" {
		parts = append(parts, labelStyle.Render("focus=")+valueStyle.Render(focusName))
	}
	return strings.Join(parts, "  ")
}

func (m Model) helpLine() string {
	if m.sys.Mode().Kind == engine.ViewingSnapshot {
		return dimStyle.Render("enter resume  ;/' scrub  q/z zoom  wasd pan  esc quit")
	}
	return dimStyle.Render("enter rewind  [/] speed  q/z zoom  wasd pan  arrows focus  space recenter  esc quit")
}

func formatScale(s float64) string {
	exp := int(math.Floor(math.Log10(s)))
	return fmt.Sprintf("1e%d m/col", exp)
}

// Run starts the interactive viewer on the alternate screen.
func Run(sys *engine.System, dt, scale float64) error {
	p := tea.NewProgram(NewModel(sys, dt, scale), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
