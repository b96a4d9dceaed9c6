package application

import (
	"strings"

	"github.com/bnema/emergent-chefs/internal/domain"
)

const (
	OwnWordsHint    = 5
	SharedWordsHint = 3
)

// BuildSystemInstructions appends the agent's newest words and the team's
// shared words to its base instructions.
func BuildSystemInstructions(agent domain.Agent, shared domain.Vocabulary) string {
	var b strings.Builder
	b.WriteString(agent.SystemPrompt)

	if own := agent.Vocabulary.Entries(OwnWordsHint); len(own) > 0 {
		b.WriteString("\n\nYour new words: ")
		b.WriteString(formatEntries(own))
		b.WriteString(". Use these more now.")
	}

	if team := shared.Entries(SharedWordsHint); len(team) > 0 {
		b.WriteString("\n\nTeam words: ")
		b.WriteString(formatEntries(team))
		b.WriteString(". Use these too.")
	}

	return b.String()
}

func formatEntries(entries []domain.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, string(entry.Concept)+"="+entry.Symbol)
	}

	return strings.Join(parts, ", ")
}
