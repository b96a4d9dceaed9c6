package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type generationDoneMsg struct {
	text string
	err  error
}

type generationSpinnerModel struct {
	spinner spinner.Model
	label   string
	fetch   tea.Cmd
	text    string
	err     error
	done    bool
}

func newGenerationSpinnerModel(label string, fetch tea.Cmd) generationSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return generationSpinnerModel{
		spinner: s,
		label:   label,
		fetch:   fetch,
	}
}

func (m generationSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m generationSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case generationDoneMsg:
		m.done = true
		m.text = msg.text
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m generationSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// spinnerGenerator shows "[agent working on course...]" while the wrapped
// generator runs.
type spinnerGenerator struct {
	next   ports.Generator
	output io.Writer
}

var _ ports.Generator = (*spinnerGenerator)(nil)

func newSpinnerGenerator(next ports.Generator, output io.Writer) *spinnerGenerator {
	return &spinnerGenerator{next: next, output: output}
}

func (g *spinnerGenerator) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	fetchCmd := func() tea.Msg {
		text, err := g.next.Generate(ctx, req)
		return generationDoneMsg{text: text, err: err}
	}

	label := fmt.Sprintf("[%s working on %s...]", req.AgentName, req.Course)
	p := tea.NewProgram(
		newGenerationSpinnerModel(label, fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(g.output),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	result, ok := finalModel.(generationSpinnerModel)
	if !ok {
		return "", fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.text, result.err
}
