package domain

type Concept string

// Entry is one concept binding, in insertion order.
type Entry struct {
	Concept Concept
	Symbol  string
}

// Vocabulary maps concepts to symbols and remembers the order in which
// concepts were first bound. Rebinding a concept keeps its position.
type Vocabulary struct {
	order   []Concept
	symbols map[Concept]string
}

func NewVocabulary(entries ...Entry) Vocabulary {
	var v Vocabulary
	for _, entry := range entries {
		v.Bind(entry.Concept, entry.Symbol)
	}

	return v
}

func (v *Vocabulary) Bind(concept Concept, symbol string) {
	if v.symbols == nil {
		v.symbols = make(map[Concept]string)
	}
	if _, ok := v.symbols[concept]; !ok {
		v.order = append(v.order, concept)
	}
	v.symbols[concept] = symbol
}

func (v Vocabulary) Len() int {
	return len(v.order)
}

func (v Vocabulary) Symbol(concept Concept) (string, bool) {
	symbol, ok := v.symbols[concept]
	return symbol, ok
}

func (v Vocabulary) HasConcept(concept Concept) bool {
	_, ok := v.symbols[concept]
	return ok
}

func (v Vocabulary) HasSymbol(symbol string) bool {
	for _, bound := range v.symbols {
		if bound == symbol {
			return true
		}
	}

	return false
}

// Entries returns at most limit entries in insertion order. A non-positive
// limit returns every entry.
func (v Vocabulary) Entries(limit int) []Entry {
	n := len(v.order)
	if limit > 0 && limit < n {
		n = limit
	}

	entries := make([]Entry, 0, n)
	for _, concept := range v.order[:n] {
		entries = append(entries, Entry{Concept: concept, Symbol: v.symbols[concept]})
	}

	return entries
}

func (v Vocabulary) Clone() Vocabulary {
	return NewVocabulary(v.Entries(0)...)
}
