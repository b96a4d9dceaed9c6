package domain

import "fmt"

const FinalReviewCourse = "Final Menu Review"

type Tier int

const (
	TierInitial Tier = iota
	TierRefine
	TierFinalize
)

func (t Tier) String() string {
	switch t {
	case TierInitial:
		return "initial concept"
	case TierRefine:
		return "refine with technique"
	case TierFinalize:
		return "finalize and coordinate"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

type Turn struct {
	Index        int
	AgentIndex   int
	Phase        int
	CourseNumber int
	Course       string
	Tier         Tier
	Prompt       string
}

// PlanTurn derives the acting agent, course and prompt for turn index.
// Agents take turns round-robin; every full round advances the phase.
func PlanTurn(index, agentCount int, courses []string) Turn {
	if agentCount <= 0 {
		agentCount = 1
	}

	phase := index / agentCount
	course := FinalReviewCourse
	if phase < len(courses) {
		course = courses[phase]
	}

	turn := Turn{
		Index:        index,
		AgentIndex:   index % agentCount,
		Phase:        phase,
		CourseNumber: phase + 1,
		Course:       course,
		Tier:         tierFor(phase, len(courses)),
	}
	turn.Prompt = turn.Tier.Prompt(turn.CourseNumber, turn.Course)

	return turn
}

func tierFor(phase, phaseCount int) Tier {
	if phaseCount <= 0 {
		return TierFinalize
	}

	tier := Tier(phase * 3 / phaseCount)
	if tier > TierFinalize {
		return TierFinalize
	}

	return tier
}

func (t Tier) Prompt(courseNumber int, course string) string {
	switch t {
	case TierInitial:
		return fmt.Sprintf("Course %d: %s. Your initial concept?", courseNumber, course)
	case TierRefine:
		return fmt.Sprintf("Refining Course %d: %s. Add techniques and details.", courseNumber, course)
	default:
		return fmt.Sprintf("Finalizing Course %d: %s. Final touches and coordination.", courseNumber, course)
	}
}
