package domain

import "time"

const (
	SnapshotAgentEntries  = 3
	SnapshotSharedEntries = 3
)

type RunOutcome string

const (
	OutcomeRunning   RunOutcome = "running"
	OutcomeCompleted RunOutcome = "completed"
	OutcomeCancelled RunOutcome = "cancelled"
)

// Snapshot is the display view of the vocabularies at a point in the run.
type Snapshot struct {
	RunID          string
	Outcome        RunOutcome
	CompletedTurns int
	TotalTurns     int
	Failures       int
	Agents         []AgentSnapshot
	Shared         []Entry
	SharedSize     int
	TakenAt        time.Time
}

type AgentSnapshot struct {
	ID                 AgentID
	Name               string
	Color              string
	Vocabulary         []Entry
	VocabularySize     int
	ShorthandFrequency float64
}

// EvolutionLevel is the percentage shown next to the vocabularies.
func (s Snapshot) EvolutionLevel() int {
	return EvolutionLevel(s.CompletedTurns)
}

func EvolutionLevel(completed int) int {
	return min(100, completed*5)
}
