package status

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	renderer   *lipgloss.Renderer
	header     lipgloss.Style
	agentTerms lipgloss.Style
	shared     lipgloss.Style
	level      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	empty      lipgloss.Style
}

func newStyles(opts RenderOptions) styles {
	r := opts.Renderer
	switch {
	case opts.Plain:
		r = lipgloss.NewRenderer(io.Discard)
	case r == nil:
		r = lipgloss.DefaultRenderer()
	}

	return styles{
		renderer:   r,
		header:     r.NewStyle().Foreground(lipgloss.Color("245")),
		agentTerms: r.NewStyle().Foreground(lipgloss.Color("250")),
		shared:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		level:      r.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: r.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    r.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   r.NewStyle().Foreground(lipgloss.Color("238")),
		empty:      r.NewStyle().Faint(true),
	}
}

// agentName renders name in the agent's display color, if any.
func (s styles) agentName(name, color string) string {
	style := s.renderer.NewStyle().Bold(true)
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render(name)
}
