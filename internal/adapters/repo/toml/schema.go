package toml

import (
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
)

const currentSchemaVersion = 1

type reportSchema struct {
	Version        int           `toml:"version"`
	RunID          string        `toml:"run_id"`
	Outcome        string        `toml:"outcome"`
	CompletedTurns int           `toml:"completed_turns"`
	TotalTurns     int           `toml:"total_turns"`
	Failures       int           `toml:"failures"`
	EvolutionLevel int           `toml:"evolution_level"`
	FinishedAt     string        `toml:"finished_at,omitempty"`
	Agents         []agentSchema `toml:"agents"`
	Shared         []entrySchema `toml:"shared,omitempty"`
}

type agentSchema struct {
	ID                 string        `toml:"id"`
	Name               string        `toml:"name"`
	ShorthandFrequency float64       `toml:"shorthand_frequency"`
	VocabularySize     int           `toml:"vocabulary_size"`
	Vocabulary         []entrySchema `toml:"vocabulary,omitempty"`
}

type entrySchema struct {
	Concept string `toml:"concept"`
	Symbol  string `toml:"symbol"`
}

func toSchema(snapshot domain.Snapshot) reportSchema {
	agents := make([]agentSchema, 0, len(snapshot.Agents))
	for _, agent := range snapshot.Agents {
		agents = append(agents, agentSchema{
			ID:                 string(agent.ID),
			Name:               agent.Name,
			ShorthandFrequency: agent.ShorthandFrequency,
			VocabularySize:     agent.VocabularySize,
			Vocabulary:         toEntrySchemas(agent.Vocabulary),
		})
	}

	return reportSchema{
		Version:        currentSchemaVersion,
		RunID:          snapshot.RunID,
		Outcome:        string(snapshot.Outcome),
		CompletedTurns: snapshot.CompletedTurns,
		TotalTurns:     snapshot.TotalTurns,
		Failures:       snapshot.Failures,
		EvolutionLevel: snapshot.EvolutionLevel(),
		FinishedAt:     formatTime(snapshot.TakenAt),
		Agents:         agents,
		Shared:         toEntrySchemas(snapshot.Shared),
	}
}

func toEntrySchemas(entries []domain.Entry) []entrySchema {
	if len(entries) == 0 {
		return nil
	}

	out := make([]entrySchema, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entrySchema{Concept: string(entry.Concept), Symbol: entry.Symbol})
	}
	return out
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
