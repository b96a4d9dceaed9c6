package status

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const levelBarWidth = 20

type RenderOptions struct {
	// Plain disables colors.
	Plain bool
	// ShowFrequency appends each agent's shorthand frequency to its line.
	ShowFrequency bool
	// Renderer picks the color profile of the destination writer. Nil uses
	// the stdout renderer.
	Renderer *lipgloss.Renderer
}

func renderView(snapshot domain.Snapshot, opts RenderOptions, s styles) string {
	lines := []string{s.header.Render("--- EMERGENT LANGUAGE STATUS ---")}

	listed := 0
	for _, agent := range snapshot.Agents {
		if len(agent.Vocabulary) == 0 {
			continue
		}
		listed++
		lines = append(lines, agentLine(agent, opts, s))
	}

	if len(snapshot.Shared) > 0 {
		lines = append(lines, s.shared.Render("Shared Terms: "+formatEntries(snapshot.Shared)))
	}

	if listed == 0 && len(snapshot.Shared) == 0 {
		lines = append(lines, s.empty.Render("No terms invented yet."))
	}

	level := snapshot.EvolutionLevel()
	lines = append(lines, lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.level.Render(fmt.Sprintf("--- Language Evolution Level: %d%% ---", level)),
		" ",
		renderProgressBar(float64(level), levelBarWidth, s),
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func agentLine(agent domain.AgentSnapshot, opts RenderOptions, s styles) string {
	line := s.agentName(agent.Name, agent.Color) + s.agentTerms.Render(": "+formatEntries(agent.Vocabulary))
	if agent.VocabularySize > len(agent.Vocabulary) {
		line += s.empty.Render(fmt.Sprintf(" (+%d more)", agent.VocabularySize-len(agent.Vocabulary)))
	}
	if opts.ShowFrequency {
		line += s.empty.Render(fmt.Sprintf(" [shorthand %.0f%%]", agent.ShorthandFrequency*100))
	}
	return line
}

// formatEntries renders entries as "concept→symbol" pairs in order.
func formatEntries(entries []domain.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s→%s", entry.Concept, entry.Symbol))
	}
	return strings.Join(parts, ", ")
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	filled = max(0, min(width, filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
