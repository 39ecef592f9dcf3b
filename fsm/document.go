package fsm

// Document is a structured view of an automaton for YAML or JSON encoding.
// All lists are sorted the same way as the canonical text form.
type Document struct {
	States    []string       `yaml:"states" json:"states"`
	Alphabet  []string       `yaml:"alphabet" json:"alphabet"`
	Rules     []RuleDocument `yaml:"rules" json:"rules"`
	Start     string         `yaml:"start" json:"start"`
	Accepting []string       `yaml:"accepting" json:"accepting"`
}

// RuleDocument is one rule of a Document. Symbol is empty for epsilon rules.
type RuleDocument struct {
	From   string `yaml:"from" json:"from"`
	Symbol string `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	To     string `yaml:"to" json:"to"`
}

// Document returns the structured view of the automaton.
func (f *Fsm) Document() Document {
	doc := Document{
		States:    append([]string{}, f.StateNames()...),
		Alphabet:  []string{},
		Rules:     []RuleDocument{},
		Start:     f.start,
		Accepting: append([]string{}, f.AcceptingStates()...),
	}
	for _, sym := range f.Alphabet() {
		doc.Alphabet = append(doc.Alphabet, string(rune(sym)))
	}
	for _, r := range f.Rules() {
		rd := RuleDocument{From: r.From, To: r.To}
		if !r.Symbol.IsEpsilon() {
			rd.Symbol = string(rune(r.Symbol))
		}
		doc.Rules = append(doc.Rules, rd)
	}
	return doc
}
