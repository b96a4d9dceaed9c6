package application

import (
	"testing"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemInstructionsWithoutVocabulary(t *testing.T) {
	agent := domain.NewAgent(domain.DefaultRoster()[1])

	got := BuildSystemInstructions(agent, domain.Vocabulary{})

	assert.Equal(t, agent.SystemPrompt, got)
}

func TestBuildSystemInstructionsLimitsHints(t *testing.T) {
	agent := domain.NewAgent(domain.AgentProfile{ID: "x", SystemPrompt: "You are Chef X."})
	for _, entry := range []domain.Entry{
		{Concept: "hot", Symbol: "++"},
		{Concept: "mix", Symbol: ">>"},
		{Concept: "add", Symbol: "+"},
		{Concept: "done", Symbol: "✓"},
		{Concept: "next", Symbol: "→"},
		{Concept: "good", Symbol: "!"},
	} {
		agent.Vocabulary.Bind(entry.Concept, entry.Symbol)
	}
	shared := domain.NewVocabulary(
		domain.Entry{Concept: "hot", Symbol: "++"},
		domain.Entry{Concept: "mix", Symbol: ">>"},
		domain.Entry{Concept: "taste", Symbol: "?"},
		domain.Entry{Concept: "cook", Symbol: "@"},
	)

	got := BuildSystemInstructions(agent, shared)

	assert.Equal(t, "You are Chef X."+
		"\n\nYour new words: hot=++, mix=>>, add=+, done=✓, next=→. Use these more now."+
		"\n\nTeam words: hot=++, mix=>>, taste=?. Use these too.", got)
}

func TestBuildSystemInstructionsSharedOnly(t *testing.T) {
	agent := domain.NewAgent(domain.AgentProfile{ID: "x", SystemPrompt: "base"})
	shared := domain.NewVocabulary(domain.Entry{Concept: "hot", Symbol: "🌶️"})

	assert.Equal(t, "base\n\nTeam words: hot=🌶️. Use these too.", BuildSystemInstructions(agent, shared))
}
