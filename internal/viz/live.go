// Package viz renders a live terminal view of a running chunk: the probed
// polarization trace, the driving field, and the remaining flux after
// subtraction.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/seewhydee/meep/internal/grid"
	"github.com/seewhydee/meep/internal/solver"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
	stepsPerFrame   = 4
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the chunk on a timer and plots the probe history.
type Model struct {
	chunk    *solver.Chunk
	comp     grid.Component
	probeIdx int
	history  []float64
	running  bool
}

func NewModel(chunk *solver.Chunk, comp grid.Component, probeIdx int) Model {
	return Model{
		chunk:    chunk,
		comp:     comp,
		probeIdx: probeIdx,
		history:  make([]float64, 0, historyCapacity),
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
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
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.chunk.Step()
			}
			m.history = append(m.history, m.chunk.TotalP(m.comp, 0, m.probeIdx))
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("dispersim  %s  t=%.2f", m.comp, m.chunk.Time())))
	b.WriteString("\n")

	if len(m.history) > 1 {
		plot := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("P(%s) at probe", m.comp)))
		b.WriteString(graphStyle.Render(plot))
		b.WriteString("\n")
	}

	w := m.chunk.Fields().Get(m.comp, 0)
	fm := m.chunk.FieldMinusP(m.comp.FieldType())
	fluxComp := grid.TypeComponent(grid.FluxType(m.comp.FieldType()), m.comp.Direction())
	rows := []string{
		labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d", m.chunk.Steps())),
		labelStyle.Render("P total") + valueStyle.Render(fmt.Sprintf("%+.6f", m.chunk.TotalP(m.comp, 0, m.probeIdx))),
	}
	if w != nil {
		rows = append(rows, labelStyle.Render("W drive")+valueStyle.Render(fmt.Sprintf("%+.6f", w[m.probeIdx])))
	}
	if f := fm.Get(fluxComp, 0); f != nil {
		rows = append(rows, labelStyle.Render("W - P")+valueStyle.Render(fmt.Sprintf("%+.6f", f[m.probeIdx])))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString(helpStyle.Render("\nspace pause/resume  q quit"))
	return b.String()
}

// RunLive starts the interactive view and blocks until quit.
func RunLive(chunk *solver.Chunk, comp grid.Component, probeIdx int) error {
	_, err := tea.NewProgram(NewModel(chunk, comp, probeIdx)).Run()
	return err
}
