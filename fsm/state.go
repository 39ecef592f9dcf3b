package fsm

import (
	"slices"
	"strings"
)

// FragmentSeparator joins the name fragments of a merged state.
const FragmentSeparator = "_"

// Rule is a single transition. Rules are values: two rules with the same
// triple are the same rule.
type Rule struct {
	From   string
	Symbol Symbol
	To     string
}

// String renders the rule as `from 'sym' -> to`.
func (r Rule) String() string {
	return r.From + " " + r.Symbol.String() + " -> " + r.To
}

// State is a node of the automaton. Its identity is a sorted set of name
// fragments: one for a declared state, several for a state produced by
// determinization.
type State struct {
	fragments []string
	rules     map[Symbol][]Rule
	seen      map[Rule]struct{}
}

// NewState creates a state named by the given fragments. Duplicates are
// collapsed and the fragments are kept sorted.
func NewState(fragments ...string) *State {
	fs := slices.Clone(fragments)
	slices.Sort(fs)
	fs = slices.Compact(fs)
	return &State{
		fragments: fs,
		rules:     make(map[Symbol][]Rule),
		seen:      make(map[Rule]struct{}),
	}
}

// Name returns the canonical name: the sorted fragments joined by
// FragmentSeparator.
func (s *State) Name() string {
	return strings.Join(s.fragments, FragmentSeparator)
}

// Fragments returns a copy of the state's name fragments.
func (s *State) Fragments() []string {
	return slices.Clone(s.fragments)
}

// AddRule attaches r to the state. It returns false if an equal rule is
// already present.
func (s *State) AddRule(r Rule) bool {
	if _, ok := s.seen[r]; ok {
		return false
	}
	s.seen[r] = struct{}{}
	s.rules[r.Symbol] = append(s.rules[r.Symbol], r)
	return true
}

// RulesOn returns the rules leaving the state on sym, in insertion order.
func (s *State) RulesOn(sym Symbol) []Rule {
	return slices.Clone(s.rules[sym])
}

// Symbols returns the symbols the state has rules for, in ascending order.
// Epsilon, if present, comes first.
func (s *State) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(s.rules))
	for sym := range s.rules {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

// Rules returns every rule leaving the state, grouped by ascending symbol.
func (s *State) Rules() []Rule {
	var out []Rule
	for _, sym := range s.Symbols() {
		out = append(out, s.rules[sym]...)
	}
	return out
}

// RuleCount returns the number of rules leaving the state.
func (s *State) RuleCount() int {
	return len(s.seen)
}
