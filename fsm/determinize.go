package fsm

import (
	"slices"
)

// subset is a state of the determinized automaton together with the source
// states it stands for.
type subset struct {
	members []string // source state names, sorted
	state   *State
}

// subsetBuilder hands out one subset per canonical name.
type subsetBuilder struct {
	src   *Fsm
	built map[string]*subset
}

// get returns the subset for the given source states, building it on first use.
func (b *subsetBuilder) get(members []string) *subset {
	ms := slices.Clone(members)
	slices.Sort(ms)
	ms = slices.Compact(ms)

	var fragments []string
	for _, m := range ms {
		fragments = append(fragments, b.src.states[m].fragments...)
	}
	key := canonicalName(fragments)
	if s, ok := b.built[key]; ok {
		return s
	}
	s := &subset{members: ms, state: NewState(fragments...)}
	b.built[key] = s
	return s
}

// Determinize applies the subset construction starting from the start state.
// The start state keeps its name. Only subsets reachable from the start state
// are kept. A subset is accepting if any of its members is, and is named by
// the sorted union of its members' fragments joined with FragmentSeparator.
//
// Epsilon rules are eliminated first if any are present.
func (f *Fsm) Determinize() {
	if f.HasEpsilonRules() {
		f.EliminateEpsilon()
	}

	b := &subsetBuilder{src: f, built: make(map[string]*subset)}
	states := make(map[string]*State)
	accepting := make(map[string]struct{})

	stack := []*subset{b.get([]string{f.start})}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := cur.state.Name()
		if _, done := states[name]; done {
			continue
		}
		states[name] = cur.state

		targets := make(map[Symbol][]string)
		for _, m := range cur.members {
			if f.IsAccepting(m) {
				accepting[name] = struct{}{}
			}
			for _, r := range f.states[m].Rules() {
				if !slices.Contains(targets[r.Symbol], r.To) {
					targets[r.Symbol] = append(targets[r.Symbol], r.To)
				}
			}
		}

		symbols := make([]Symbol, 0, len(targets))
		for sym := range targets {
			symbols = append(symbols, sym)
		}
		slices.Sort(symbols)

		for _, sym := range symbols {
			next := b.get(targets[sym])
			nextName := next.state.Name()
			cur.state.AddRule(Rule{From: name, Symbol: sym, To: nextName})
			if _, done := states[nextName]; !done {
				stack = append(stack, next)
			}
		}
	}

	f.replace(states, accepting)
}
