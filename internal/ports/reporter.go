package ports

import "github.com/bnema/emergent-chefs/internal/domain"

type Intro struct {
	Challenge string
	Agents    []domain.Agent
}

type TurnReport struct {
	Turn     domain.Turn
	Agent    domain.Agent
	Response string
	Fallback bool
}

// Reporter presents the run. It never changes run state.
type Reporter interface {
	Intro(intro Intro)
	TurnStarted(turn domain.Turn, agent domain.Agent)
	TurnCompleted(report TurnReport)
	StatusReport(snapshot domain.Snapshot)
	Summary(snapshot domain.Snapshot)
}
