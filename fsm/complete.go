package fsm

import (
	"fmt"
	"maps"
	"strings"
)

// SinkName is the name given to the absorbing non-accepting state added by
// Complete. It is lower-cased for case-insensitive automata.
const SinkName = "qFALSE"

// LiveStates returns the states from which an accepting state is reachable,
// accepting states included. It is the least fixed point of adding the source
// of any rule whose target is already live.
func (f *Fsm) LiveStates() map[string]struct{} {
	live := make(map[string]struct{}, len(f.accepting))
	for name := range f.accepting {
		live[name] = struct{}{}
	}

	for changed := true; changed; {
		changed = false
		for name, s := range f.states {
			if _, ok := live[name]; ok {
				continue
			}
			for _, rules := range s.rules {
				if reachesLive(rules, live) {
					live[name] = struct{}{}
					changed = true
					break
				}
			}
		}
	}
	return live
}

func reachesLive(rules []Rule, live map[string]struct{}) bool {
	for _, r := range rules {
		if _, ok := live[r.To]; ok {
			return true
		}
	}
	return false
}

// Complete turns the automaton into a well-specified one. States that cannot
// reach an accepting state are dropped together with the rules leading to
// them (the start state is always kept). A sink state that loops on every
// symbol is then added, and every missing (state, symbol) transition is
// pointed at it.
//
// The automaton is determinized first unless it already is deterministic.
func (f *Fsm) Complete() {
	if !f.IsDeterministic() {
		f.Determinize()
	}

	live := f.LiveStates()
	keep := maps.Clone(live)
	keep[f.start] = struct{}{}

	sinkName := f.sinkName(keep)
	alphabet := f.Alphabet()

	states := make(map[string]*State, len(keep)+1)
	accepting := make(map[string]struct{}, len(f.accepting))
	for name := range keep {
		src := f.states[name]
		s := NewState(src.fragments...)
		for _, r := range src.Rules() {
			if _, ok := live[r.To]; ok {
				s.AddRule(r)
			}
		}
		for _, sym := range alphabet {
			if len(s.rules[sym]) == 0 {
				s.AddRule(Rule{From: name, Symbol: sym, To: sinkName})
			}
		}
		states[name] = s
		if f.IsAccepting(name) {
			accepting[name] = struct{}{}
		}
	}

	sink := NewState(sinkName)
	for _, sym := range alphabet {
		sink.AddRule(Rule{From: sinkName, Symbol: sym, To: sinkName})
	}
	states[sinkName] = sink

	f.replace(states, accepting)
}

// sinkName picks SinkName, suffixed with a number if a kept state already
// uses it.
func (f *Fsm) sinkName(keep map[string]struct{}) string {
	base := SinkName
	if f.foldCase {
		base = strings.ToLower(base)
	}
	name := base
	for i := 2; ; i++ {
		if _, taken := keep[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
}
