package fsm

import (
	"maps"
	"slices"
)

// EpsilonClosure returns the names of all states reachable from name using
// only epsilon rules, name included, in ascending order.
func (f *Fsm) EpsilonClosure(name string) []string {
	return slices.Sorted(maps.Keys(f.epsilonClosure(name)))
}

// epsilonClosure walks epsilon rules with an explicit stack.
func (f *Fsm) epsilonClosure(name string) map[string]struct{} {
	visited := map[string]struct{}{name: {}}
	stack := []string{name}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, r := range f.states[cur].rules[Epsilon] {
			if _, ok := visited[r.To]; ok {
				continue
			}
			visited[r.To] = struct{}{}
			stack = append(stack, r.To)
		}
	}
	return visited
}

// EliminateEpsilon removes all epsilon rules. Each state S is rebuilt with
// the non-epsilon rules of every state in its epsilon-closure, re-sourced at
// S, and becomes accepting if any state in the closure is accepting.
func (f *Fsm) EliminateEpsilon() {
	states := make(map[string]*State, len(f.states))
	accepting := make(map[string]struct{})

	for name, src := range f.states {
		closure := slices.Sorted(maps.Keys(f.epsilonClosure(name)))

		repl := NewState(src.fragments...)
		for _, member := range closure {
			for _, r := range f.states[member].Rules() {
				if r.Symbol.IsEpsilon() {
					continue
				}
				repl.AddRule(Rule{From: name, Symbol: r.Symbol, To: r.To})
			}
		}

		for _, member := range closure {
			if f.IsAccepting(member) {
				accepting[name] = struct{}{}
				break
			}
		}

		states[name] = repl
	}

	f.replace(states, accepting)
}
