package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/metrics"
	"github.com/san-kum/mergersrc/internal/sim"
	"github.com/san-kum/mergersrc/internal/viz"
)

// Session is one ready-to-step run shown by the live view.
type Session struct {
	Name      string
	Simulator *sim.Simulator
	Geometry  dynamo.Geometry
	State0    *dynamo.Field
	Dt        float64
	Steps     int
}

// Builder creates the session for a named setup.
type Builder func(name string) (*Session, error)

type screen int

const (
	screenMenu screen = iota
	screenRun
)

const historyLen = 200

type model struct {
	screen screen
	cursor int
	names  []string
	build  Builder

	session  *Session
	state    *dynamo.Field
	src      *dynamo.Field
	simTime  float64
	step     int
	speed    int
	paused   bool
	slice    int
	keHist   []float64
	injected float64
	err      error

	canvas *viz.Canvas
	width  int
	height int
}

// NewLive returns the live model. With a single name the menu is skipped.
func NewLive(names []string, build Builder) tea.Model {
	m := model{
		names:  names,
		build:  build,
		speed:  1,
		canvas: viz.NewCanvas(32, 12),
		width:  80,
		height: 24,
	}
	if len(names) == 1 {
		m = m.start(names[0])
	}
	return m
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	if m.screen == screenRun {
		return tick()
	}
	return nil
}

func (m model) start(name string) model {
	s, err := m.build(name)
	if err != nil {
		m.err = err
		return m
	}

	m.session = s
	m.state = s.State0.Clone()
	nx, ny, nz := m.state.Dims()
	m.src, _ = dynamo.NewField(nx, ny, nz, dynamo.NVAR)
	m.simTime, m.step, m.injected = 0, 0, 0
	m.slice = nz / 2
	m.keHist = []float64{metrics.TotalKineticEnergy(m.state, s.Geometry)}
	m.paused = false
	m.err = nil
	m.screen = screenRun
	return m
}

func (m model) finished() bool {
	return m.err != nil || (m.session != nil && m.step >= m.session.Steps)
}

func (m model) advance() model {
	s := m.session
	for i := 0; i < m.speed && !m.finished(); i++ {
		if err := s.Simulator.Step(m.state, m.src, s.Dt, m.simTime); err != nil {
			m.err = &dynamo.SimulationError{Step: m.step, Time: m.simTime, Wrapped: err}
			return m
		}
		m.injected += s.Dt * m.src.Sum(dynamo.UEDEN) * s.Geometry.CellVolume()
		m.simTime += s.Dt
		m.step++

		if !m.state.IsValid() {
			m.err = &dynamo.SimulationError{Step: m.step, Time: m.simTime, Wrapped: dynamo.ErrInvalidState}
			return m
		}

		m.keHist = append(m.keHist, metrics.TotalKineticEnergy(m.state, s.Geometry))
		if len(m.keHist) > historyLen {
			m.keHist = m.keHist[len(m.keHist)-historyLen:]
		}
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenRun {
			return m, nil
		}
		if !m.paused {
			m = m.advance()
		}
		if m.finished() {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.screen == screenMenu {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.names) == 0 {
				return m, nil
			}
			m = m.start(m.names[m.cursor])
			if m.screen == screenRun {
				return m, tick()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.names) > 1 {
			m.screen = screenMenu
			m.session = nil
		}
	case " ":
		m.paused = !m.paused
	case "r":
		m = m.start(m.session.Name)
		return m, tick()
	case "+", "=":
		m.speed = min(m.speed*2, 64)
	case "-":
		m.speed = max(m.speed/2, 1)
	case "[":
		m.slice = max(m.slice-1, 0)
	case "]":
		_, _, nz := m.state.Dims()
		m.slice = min(m.slice+1, nz-1)
	}
	return m, nil
}

func (m model) View() string {
	if m.screen == screenMenu {
		return m.viewMenu()
	}
	return m.viewRun()
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n   " + viz.Title.Render("mergersrc live") + "\n\n")
	for i, name := range m.names {
		if i == m.cursor {
			b.WriteString("   " + viz.Title.Render("▸ "+name) + "\n")
		} else {
			b.WriteString("     " + viz.Subtle.Render(name) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n   " + viz.StatusError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n   " + viz.KeyHint.Render("↑↓ select   enter start   q quit") + "\n")

	return b.String()
}

func (m model) viewRun() string {
	s := m.session
	var b strings.Builder

	status := viz.StatusRunning.Render("● running")
	switch {
	case m.err != nil:
		status = viz.StatusError.Render("✕ " + m.err.Error())
	case m.finished():
		status = viz.Subtle.Render("■ done")
	case m.paused:
		status = viz.StatusPaused.Render("○ paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s  %s\n", viz.Title.Render(s.Name), status))

	progress := float64(m.step) / float64(max(s.Steps, 1))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", viz.ProgressBar(progress, 36),
		viz.Subtle.Render(fmt.Sprintf("step %d/%d  t=%.3f  x%d", m.step, s.Steps, m.simTime, m.speed))))

	viz.DensitySlice(m.canvas, m.state, m.slice, densityThreshold(m.state))
	slice := viz.Panel.Render(strings.TrimRight(m.canvas.String(), "\n"))

	ke := m.keHist[len(m.keHist)-1]
	stats := strings.Join([]string{
		viz.Metric("kinetic  ", fmt.Sprintf("%.5g", ke)),
		viz.Metric("injected ", fmt.Sprintf("%.5g", m.injected)),
		viz.Metric("max |v|  ", fmt.Sprintf("%.4g", metrics.MaxSpeed(m.state))),
		viz.Metric("slice k  ", fmt.Sprintf("%d", m.slice)),
		"",
		viz.Subtle.Render(viz.Sparkline(m.keHist, 30)),
	}, "\n")

	b.WriteString(sideBySide(slice, stats))
	b.WriteString("\n")
	b.WriteString(viz.PlotSeries(m.keHist, min(max(m.width-20, 30), 100), 6, "kinetic energy"))
	b.WriteString("\n\n   " + viz.KeyHint.Render("space pause   r reset   +/- speed   [/] slice   esc menu   q quit") + "\n")

	return b.String()
}

// densityThreshold is the midpoint between the lowest and highest density,
// which separates the stars from the ambient medium.
func densityThreshold(state *dynamo.Field) float64 {
	rho := state.Component(dynamo.URHO)
	return 0.5 * (floats.Min(rho) + floats.Max(rho))
}

func sideBySide(left, right string) string {
	l := strings.Split(left, "\n")
	r := strings.Split(right, "\n")
	n := max(len(l), len(r))

	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("   ")
		if i < len(l) {
			b.WriteString(l[i])
		}
		b.WriteString("   ")
		if i < len(r) {
			b.WriteString(r[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the live view in the alternate screen.
func Run(names []string, build Builder) error {
	p := tea.NewProgram(NewLive(names, build), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
