package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// --- helpers ---

func rule(from string, sym rune, to string) Rule {
	return Rule{From: from, Symbol: Symbol(sym), To: to}
}

func eps(from, to string) Rule {
	return Rule{From: from, Symbol: Epsilon, To: to}
}

// build assembles an automaton through the public construction API.
func build(t *testing.T, states []string, alphabet string, start string, accepting []string, rules ...Rule) *Fsm {
	t.Helper()
	f := New(false)
	for _, s := range states {
		f.AddState(s)
	}
	for _, sym := range alphabet {
		require.NoError(t, f.AddSymbol(Symbol(sym)))
	}
	for _, r := range rules {
		_, err := f.AddRule(r)
		require.NoError(t, err)
	}
	require.NoError(t, f.SetStart(start))
	for _, a := range accepting {
		require.NoError(t, f.AddAccepting(a))
	}
	require.NoError(t, f.Check())
	return f
}

// example1 is ({s0,s1},{'a'},{s0 'a' -> s1},s0,{s1}).
func example1(t *testing.T) *Fsm {
	return build(t, []string{"s0", "s1"}, "a", "s0", []string{"s1"}, rule("s0", 'a', "s1"))
}

// assertDeterministic checks that no state has two rules on one symbol.
func assertDeterministic(t *testing.T, f *Fsm) {
	t.Helper()
	for _, s := range f.States() {
		for _, sym := range s.Symbols() {
			require.False(t, sym.IsEpsilon(), "state %s has epsilon rules", s.Name())
			require.Len(t, s.RulesOn(sym), 1, "state %s symbol %s", s.Name(), sym)
		}
	}
}
