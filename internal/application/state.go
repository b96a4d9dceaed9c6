package application

import (
	"fmt"
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
)

// State is everything a run mutates. Session.Step is its only writer.
type State struct {
	RunID     string
	Agents    []domain.Agent
	Shared    domain.Vocabulary
	History   domain.History
	Completed int
	Failures  int
}

func NewState(runID string, profiles []domain.AgentProfile) (*State, error) {
	if err := domain.ValidateRoster(profiles); err != nil {
		return nil, fmt.Errorf("build run state: %w", err)
	}

	agents := make([]domain.Agent, 0, len(profiles))
	for _, profile := range profiles {
		agents = append(agents, domain.NewAgent(profile))
	}

	return &State{RunID: runID, Agents: agents}, nil
}

func (s *State) Snapshot(totalTurns int, outcome domain.RunOutcome, takenAt time.Time) domain.Snapshot {
	return s.snapshot(totalTurns, outcome, takenAt, domain.SnapshotAgentEntries, domain.SnapshotSharedEntries)
}

// FullSnapshot is Snapshot without truncation, for run reports.
func (s *State) FullSnapshot(totalTurns int, outcome domain.RunOutcome, takenAt time.Time) domain.Snapshot {
	return s.snapshot(totalTurns, outcome, takenAt, 0, 0)
}

func (s *State) snapshot(totalTurns int, outcome domain.RunOutcome, takenAt time.Time, agentEntries, sharedEntries int) domain.Snapshot {
	agents := make([]domain.AgentSnapshot, 0, len(s.Agents))
	for _, agent := range s.Agents {
		agents = append(agents, domain.AgentSnapshot{
			ID:                 agent.ID,
			Name:               agent.Name,
			Color:              agent.Color,
			Vocabulary:         agent.Vocabulary.Entries(agentEntries),
			VocabularySize:     agent.Vocabulary.Len(),
			ShorthandFrequency: agent.ShorthandFrequency,
		})
	}

	return domain.Snapshot{
		RunID:          s.RunID,
		Outcome:        outcome,
		CompletedTurns: s.Completed,
		TotalTurns:     totalTurns,
		Failures:       s.Failures,
		Agents:         agents,
		Shared:         s.Shared.Entries(sharedEntries),
		SharedSize:     s.Shared.Len(),
		TakenAt:        takenAt,
	}
}
