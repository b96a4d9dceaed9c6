package domain

import "math/rand/v2"

// Concepts bound to extracted candidates. The choice ignores what the token
// actually says.
var Concepts = []Concept{"hot", "mix", "add", "cook", "taste", "done", "next", "good"}

var (
	SynthesisSymbols = []string{">>", "++", "✓", "→", "@", "!", "?", "<<", "--", "*"}
	SynthesisActions = []Concept{"mix", "hot", "done", "next", "here", "good", "help", "back", "less", "more"}
)

const (
	AbsorbCap            = 10
	SynthesisCap         = 12
	PromotionMinSize     = 2
	PromotionProbability = 0.4
	SynthesisProbability = 0.4
	FrequencyFloor       = 0.2
	FrequencyStep        = 0.05
)

// Evolution summarizes what one Evolve call changed.
type Evolution struct {
	Bound       []Entry
	Promoted    []Entry
	Synthesized *Entry
	Frequency   float64
}

type Evolver struct {
	rng *rand.Rand
}

func NewEvolver(rng *rand.Rand) *Evolver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Evolver{rng: rng}
}

// NewSeededEvolver returns an evolver whose draws are reproducible.
func NewSeededEvolver(seed uint64) *Evolver {
	return NewEvolver(rand.New(rand.NewPCG(seed, seed)))
}

// Evolve folds candidates into the agent, synthesizes at most one entry and
// recomputes the shorthand frequency from the turns completed so far.
func (e *Evolver) Evolve(agent *Agent, shared *Vocabulary, candidates []string, completed int) Evolution {
	bound, promoted := e.Absorb(agent, shared, candidates)
	synthesized := e.Synthesize(agent)
	frequency := e.UpdateFrequency(agent, completed)

	return Evolution{
		Bound:       bound,
		Promoted:    promoted,
		Synthesized: synthesized,
		Frequency:   frequency,
	}
}

func (e *Evolver) Absorb(agent *Agent, shared *Vocabulary, candidates []string) (bound []Entry, promoted []Entry) {
	for _, symbol := range candidates {
		if agent.Vocabulary.Len() >= AbsorbCap {
			continue
		}
		if agent.Vocabulary.HasSymbol(symbol) {
			continue
		}

		concept := Concepts[e.rng.IntN(len(Concepts))]
		agent.Vocabulary.Bind(concept, symbol)
		bound = append(bound, Entry{Concept: concept, Symbol: symbol})

		if agent.Vocabulary.Len() > PromotionMinSize && e.rng.Float64() < PromotionProbability {
			shared.Bind(concept, symbol)
			promoted = append(promoted, Entry{Concept: concept, Symbol: symbol})
		}
	}

	return bound, promoted
}

func (e *Evolver) Synthesize(agent *Agent) *Entry {
	if e.rng.Float64() >= SynthesisProbability || agent.Vocabulary.Len() >= SynthesisCap {
		return nil
	}

	symbol := SynthesisSymbols[e.rng.IntN(len(SynthesisSymbols))]
	action := SynthesisActions[e.rng.IntN(len(SynthesisActions))]
	if agent.Vocabulary.HasConcept(action) || agent.Vocabulary.HasSymbol(symbol) {
		return nil
	}

	agent.Vocabulary.Bind(action, symbol)
	return &Entry{Concept: action, Symbol: symbol}
}

func (e *Evolver) UpdateFrequency(agent *Agent, completed int) float64 {
	agent.ShorthandFrequency = max(agent.ShorthandFrequency, ShorthandFrequencyAt(completed))
	return agent.ShorthandFrequency
}

func ShorthandFrequencyAt(completed int) float64 {
	return min(MaxShorthandFrequency, FrequencyFloor+FrequencyStep*float64(completed))
}
