// Package fsm models finite-state automata and the transformations applied to
// them: epsilon elimination, determinization, completion, and the acceptance
// test for input strings.
//
// An Fsm is populated once through AddState, AddSymbol, AddRule, SetStart and
// AddAccepting, each of which enforces the model's invariants. Every
// transformation then builds a complete replacement graph and swaps it in as
// a whole; existing State values are never edited in place.
package fsm

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrUnknownState is returned when a start state, accepting state or rule
	// endpoint names a state that was never added.
	ErrUnknownState = errors.New("unknown state")
	// ErrUnknownSymbol is returned when a rule uses a symbol outside the alphabet.
	ErrUnknownSymbol = errors.New("symbol not in alphabet")
	// ErrEpsilonInAlphabet is returned when Epsilon is added to an alphabet.
	ErrEpsilonInAlphabet = errors.New("epsilon cannot be an alphabet symbol")
	// ErrEmptyAlphabet is reported by Check for an automaton without symbols.
	ErrEmptyAlphabet = errors.New("alphabet is empty")
)

// Fsm is a finite-state automaton. States are keyed by their canonical name.
type Fsm struct {
	states    map[string]*State
	alphabet  map[Symbol]struct{}
	start     string
	accepting map[string]struct{}
	foldCase  bool
}

// New creates an empty automaton. With foldCase set, names and symbols are
// expected to be lower-cased by whoever builds it, and generated names (the
// completion sink) are lower-cased too.
func New(foldCase bool) *Fsm {
	return &Fsm{
		states:    make(map[string]*State),
		alphabet:  make(map[Symbol]struct{}),
		accepting: make(map[string]struct{}),
		foldCase:  foldCase,
	}
}

// CaseInsensitive reports whether the automaton was built in case-insensitive mode.
func (f *Fsm) CaseInsensitive() bool { return f.foldCase }

// AddState declares a simple state. It returns false if the name is taken.
func (f *Fsm) AddState(name string) bool {
	if _, ok := f.states[name]; ok {
		return false
	}
	f.states[name] = NewState(name)
	return true
}

// AddSymbol adds sym to the alphabet. Adding a symbol twice is a no-op.
func (f *Fsm) AddSymbol(sym Symbol) error {
	if sym.IsEpsilon() {
		return ErrEpsilonInAlphabet
	}
	f.alphabet[sym] = struct{}{}
	return nil
}

// AddRule attaches r to its source state. Both endpoints must exist and a
// non-epsilon symbol must be in the alphabet. The boolean is false when an
// equal rule was already present.
func (f *Fsm) AddRule(r Rule) (bool, error) {
	from, ok := f.states[r.From]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownState, r.From)
	}
	if _, ok := f.states[r.To]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownState, r.To)
	}
	if !r.Symbol.IsEpsilon() && !f.HasSymbol(r.Symbol) {
		return false, fmt.Errorf("%w: %s", ErrUnknownSymbol, r.Symbol)
	}
	return from.AddRule(r), nil
}

// SetStart sets the start state.
func (f *Fsm) SetStart(name string) error {
	if _, ok := f.states[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	f.start = name
	return nil
}

// AddAccepting marks a state as accepting.
func (f *Fsm) AddAccepting(name string) error {
	if _, ok := f.states[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	f.accepting[name] = struct{}{}
	return nil
}

// Start returns the name of the start state.
func (f *Fsm) Start() string { return f.start }

// State returns the state with the given name, or nil.
func (f *Fsm) State(name string) *State { return f.states[name] }

// HasState reports whether a state with the given name exists.
func (f *Fsm) HasState(name string) bool {
	_, ok := f.states[name]
	return ok
}

// HasSymbol reports whether sym is in the alphabet.
func (f *Fsm) HasSymbol(sym Symbol) bool {
	_, ok := f.alphabet[sym]
	return ok
}

// IsAccepting reports whether the named state is accepting.
func (f *Fsm) IsAccepting(name string) bool {
	_, ok := f.accepting[name]
	return ok
}

// StateNames returns all state names in ascending order.
func (f *Fsm) StateNames() []string {
	return slices.Sorted(maps.Keys(f.states))
}

// States returns all states ordered by name.
func (f *Fsm) States() []*State {
	names := f.StateNames()
	out := make([]*State, len(names))
	for i, name := range names {
		out[i] = f.states[name]
	}
	return out
}

// Alphabet returns the alphabet in ascending order.
func (f *Fsm) Alphabet() []Symbol {
	return slices.Sorted(maps.Keys(f.alphabet))
}

// AcceptingStates returns the accepting state names in ascending order.
func (f *Fsm) AcceptingStates() []string {
	return slices.Sorted(maps.Keys(f.accepting))
}

// Rules returns every rule of the automaton ordered by its rendered form.
func (f *Fsm) Rules() []Rule {
	var rules []Rule
	for _, s := range f.states {
		rules = append(rules, s.Rules()...)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].String() < rules[j].String()
	})
	return rules
}

// RuleCount returns the total number of rules.
func (f *Fsm) RuleCount() int {
	n := 0
	for _, s := range f.states {
		n += s.RuleCount()
	}
	return n
}

// HasEpsilonRules reports whether any state has an epsilon rule.
func (f *Fsm) HasEpsilonRules() bool {
	for _, s := range f.states {
		if len(s.rules[Epsilon]) > 0 {
			return true
		}
	}
	return false
}

// IsDeterministic reports whether the automaton has no epsilon rules and at
// most one rule per (state, symbol) pair.
func (f *Fsm) IsDeterministic() bool {
	for _, s := range f.states {
		for sym, rules := range s.rules {
			if sym.IsEpsilon() || len(rules) > 1 {
				return false
			}
		}
	}
	return true
}

// Check verifies the model invariants: a non-empty alphabet without epsilon,
// a declared start state, declared accepting states, and rules whose
// endpoints and symbols are all declared.
func (f *Fsm) Check() error {
	var errs []error
	if len(f.alphabet) == 0 {
		errs = append(errs, ErrEmptyAlphabet)
	}
	if _, ok := f.alphabet[Epsilon]; ok {
		errs = append(errs, ErrEpsilonInAlphabet)
	}
	if !f.HasState(f.start) {
		errs = append(errs, fmt.Errorf("start %w: %q", ErrUnknownState, f.start))
	}
	for _, name := range f.AcceptingStates() {
		if !f.HasState(name) {
			errs = append(errs, fmt.Errorf("accepting %w: %q", ErrUnknownState, name))
		}
	}
	for key, s := range f.states {
		if key != s.Name() {
			errs = append(errs, fmt.Errorf("state %q is stored under key %q", s.Name(), key))
		}
		for _, r := range s.Rules() {
			if r.From != key || !f.HasState(r.To) {
				errs = append(errs, fmt.Errorf("rule %s: %w", r, ErrUnknownState))
			}
			if !r.Symbol.IsEpsilon() && !f.HasSymbol(r.Symbol) {
				errs = append(errs, fmt.Errorf("rule %s: %w", r, ErrUnknownSymbol))
			}
		}
	}
	return errors.Join(errs...)
}

// replace installs a new graph in one step.
func (f *Fsm) replace(states map[string]*State, accepting map[string]struct{}) {
	f.states = states
	f.accepting = accepting
}

// canonicalName joins sorted, de-duplicated fragments the way State.Name does.
func canonicalName(fragments []string) string {
	fs := slices.Clone(fragments)
	slices.Sort(fs)
	return strings.Join(slices.Compact(fs), FragmentSeparator)
}
