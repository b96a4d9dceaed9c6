package domain

import "strings"

type AgentID string

const (
	BaseShorthandFrequency = 0.1
	MaxShorthandFrequency  = 0.8
)

type Agent struct {
	ID           AgentID
	Name         string
	Specialty    string
	Ingredients  []string
	ModelRef     string
	SystemPrompt string
	Temperature  float64
	Color        string

	Vocabulary         Vocabulary
	ShorthandFrequency float64
}

// NewAgent returns an agent with an empty vocabulary and the base
// shorthand frequency.
func NewAgent(profile AgentProfile) Agent {
	return Agent{
		ID:                 profile.ID,
		Name:               profile.Name,
		Specialty:          profile.Specialty,
		Ingredients:        append([]string(nil), profile.Ingredients...),
		ModelRef:           profile.ModelRef,
		SystemPrompt:       profile.SystemPrompt,
		Temperature:        profile.Temperature,
		Color:              profile.Color,
		ShorthandFrequency: BaseShorthandFrequency,
	}
}

// AgentProfile is the static part of an agent, as configured.
type AgentProfile struct {
	ID           AgentID
	Name         string
	Specialty    string
	Ingredients  []string
	ModelRef     string
	SystemPrompt string
	Temperature  float64
	Color        string
}

func (a Agent) Clone() Agent {
	clone := a
	clone.Ingredients = append([]string(nil), a.Ingredients...)
	clone.Vocabulary = a.Vocabulary.Clone()
	return clone
}

// KeyIngredients returns the first n ingredients joined for display.
func (a Agent) KeyIngredients(n int) string {
	if n <= 0 || n > len(a.Ingredients) {
		n = len(a.Ingredients)
	}

	return strings.Join(a.Ingredients[:n], ", ")
}
