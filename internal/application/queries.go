package application

import "github.com/bnema/emergent-chefs/internal/domain"

type RosterEntry struct {
	ID          domain.AgentID
	Name        string
	Specialty   string
	Model       string
	Temperature float64
	Ingredients string
}

// Roster lists the configured agents for display.
func Roster(profiles []domain.AgentProfile) []RosterEntry {
	entries := make([]RosterEntry, 0, len(profiles))
	for _, profile := range profiles {
		agent := domain.NewAgent(profile)
		entries = append(entries, RosterEntry{
			ID:          agent.ID,
			Name:        agent.Name,
			Specialty:   agent.Specialty,
			Model:       agent.ModelRef,
			Temperature: agent.Temperature,
			Ingredients: agent.KeyIngredients(5),
		})
	}

	return entries
}
