package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/thermosim/internal/model"
	"github.com/san-kum/thermosim/internal/thermo"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the thermal simulation in real time and renders temperature
// and power histories with a stats panel.
type Model struct {
	sys        *model.Thermal
	integ      thermo.Integrator
	scenario   string
	T, t, dt   float64
	running    bool
	showHelp   bool
	fps        int
	tempHist   []float64
	powerHist  []float64
	paramKeys  []string
	selected   int
	initialT   float64
	initParams thermo.Params
}

func NewModel(sys *model.Thermal, integ thermo.Integrator, scenario string, dt float64, fps int) Model {
	return Model{
		sys:        sys,
		integ:      integ,
		scenario:   scenario,
		T:          sys.Params.Initial,
		dt:         dt,
		running:    true,
		fps:        fps,
		tempHist:   make([]float64, 0, historyCapacity),
		powerHist:  make([]float64, 0, historyCapacity),
		paramKeys:  []string{"capacity", "conductivity", "ambient"},
		initialT:   sys.Params.Initial,
		initParams: sys.Params,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if adaptive, ok := m.integ.(thermo.AdaptiveIntegrator); ok {
		newT, suggested, _ := adaptive.StepAdaptive(m.sys, m.T, m.t, m.dt, 1e-6)
		m.T = newT
		m.t += m.dt
		if suggested > 0.001 && suggested < 0.5 {
			m.dt = suggested
		}
	} else {
		m.T = m.integ.Step(m.sys, m.T, m.t, m.dt)
		m.t += m.dt
	}

	m.tempHist = append(m.tempHist, m.T)
	if len(m.tempHist) > historyCapacity {
		m.tempHist = m.tempHist[1:]
	}
	m.powerHist = append(m.powerHist, m.sys.Load.Power(m.t))
	if len(m.powerHist) > historyCapacity {
		m.powerHist = m.powerHist[1:]
	}
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	val := m.sys.GetParams()[key]
	newVal := val * factor
	if newVal == 0 {
		newVal = 1e-6
	}
	// SetParam rejects values that would make the system ill-posed.
	_ = m.sys.SetParam(key, newVal)
}

func (m *Model) reset() {
	m.t = 0
	m.T = m.initialT
	m.sys.Params = m.initParams
	m.tempHist = m.tempHist[:0]
	m.powerHist = m.powerHist[:0]
	m.running = true
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("THERMOSIM " + strings.ToUpper(m.scenario)))
	s.WriteString("\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.tempHist) > 1 {
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.tempHist,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("temperature (degC)"),
		)))
		s.WriteString("\n")
		s.WriteString(graphStyle.Render(asciigraph.Plot(m.powerHist,
			asciigraph.Height(5),
			asciigraph.Width(70),
			asciigraph.Caption("power (W)"),
		)))
		s.WriteString("\n")
	}

	s.WriteString(m.statsView())

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause  r reset  tab select param  up/down adjust  q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help"))
	}
	s.WriteString("\n")

	return s.String()
}

func (m Model) statsView() string {
	p := m.sys.Params
	power := m.sys.Load.Power(m.t)
	steady := p.SteadyState(power)

	settled := 100.0
	if steady != m.initialT {
		settled = 100 * (m.T - m.initialT) / (steady - m.initialT)
	}

	rows := []struct {
		label string
		value string
		key   string
	}{
		{"time", fmt.Sprintf("%.1f s", m.t), ""},
		{"temperature", fmt.Sprintf("%.2f degC", m.T), ""},
		{"power", fmt.Sprintf("%.1f W", power), ""},
		{"heat loss", fmt.Sprintf("%.1f W", m.sys.HeatLoss(m.T)), ""},
		{"steady state", fmt.Sprintf("%.2f degC", steady), ""},
		{"settled", fmt.Sprintf("%.0f %%", settled), ""},
		{"tau", fmt.Sprintf("%.1f s", p.TimeConstant()), ""},
		{"capacity", fmt.Sprintf("%.1f J/degC", p.HeatCapacity), "capacity"},
		{"conductivity", fmt.Sprintf("%.2f W/degC", p.Conductivity), "conductivity"},
		{"ambient", fmt.Sprintf("%.1f degC", p.Ambient), "ambient"},
	}

	var b strings.Builder
	for _, row := range rows {
		style := valueStyle
		if row.key != "" && row.key == m.paramKeys[m.selected] {
			style = activeStyle
		}
		b.WriteString(labelStyle.Render(row.label) + style.Render(row.value) + "\n")
	}
	return statsStyle.Render(b.String())
}
