// Package viz provides a live terminal view of a running integration,
// built on the Bubble Tea framework. The displayed trajectory is sampled
// from each step's dense output at display cadence, independent of the
// integration step size.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

const (
	graphWidth      = 70
	graphHeight     = 14
	samplesPerStep  = 4
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model advances the integration one step per frame and renders the
// sampled trajectory.
type Model struct {
	sys       ode.System
	stepper   *rk.Stepper
	modelName string

	start ode.StateAndDerivative
	cur   ode.StateAndDerivative
	step  float64
	final float64

	history []float64
	running bool
	done    bool
	err     error
}

func NewModel(sys ode.System, stepper *rk.Stepper, y0 ode.State, start, final, step float64, modelName string) Model {
	from := ode.StateAndDerivative{
		Time:       start,
		State:      y0.Clone(),
		Derivative: sys.Derivatives(start, y0),
	}
	return Model{
		sys:       sys,
		stepper:   stepper,
		modelName: modelName,
		start:     from.Clone(),
		cur:       from,
		step:      step,
		final:     final,
		history:   make([]float64, 0, historyCapacity),
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.cur = m.start.Clone()
			m.history = m.history[:0]
			m.done = false
			m.err = nil
			m.running = true
		}
		return m, nil
	case TickMsg:
		if m.running && !m.done && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance commits one integration step and samples its dense output.
func (m *Model) advance() {
	h := m.final - m.cur.Time
	if h == 0 {
		m.done = true
		return
	}
	if m.step < absf(h) {
		h = m.step * signf(h)
	}

	end, interp, err := m.stepper.Step(m.sys, m.cur, h)
	if err != nil {
		m.err = err
		return
	}

	for i := 1; i <= samplesPerStep; i++ {
		t := m.cur.Time + h*float64(i)/samplesPerStep
		m.history = append(m.history, interp.StateAt(t)[0])
	}
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}

	m.cur = end
	if m.cur.Time == m.final {
		m.done = true
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %s method", m.modelName, m.stepper.Tableau().Name)))
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Width(graphWidth),
			asciigraph.Height(graphHeight),
			asciigraph.Caption("y[0]"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4f / %.4f", m.cur.Time, m.final)) + "\n")
	for i, v := range m.cur.State {
		b.WriteString(labelStyle.Render(fmt.Sprintf("y[%d]", i)) + valueStyle.Render(fmt.Sprintf("%+.6f", v)) + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(doneStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	case m.done:
		b.WriteString(doneStyle.Render("integration complete") + "\n")
	case !m.running:
		b.WriteString(doneStyle.Render("paused") + "\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(sys ode.System, stepper *rk.Stepper, y0 ode.State, start, final, step float64, modelName string) error {
	p := tea.NewProgram(NewModel(sys, stepper, y0, start, final, step, modelName))
	_, err := p.Run()
	return err
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func signf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
