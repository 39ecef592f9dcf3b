package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteAddsSink(t *testing.T) {
	// ({s0,s1},{'a','b'},{s0 'a' -> s1, s1 'b' -> s1},s0,{s1})
	f := build(t, []string{"s0", "s1"}, "ab", "s0", []string{"s1"},
		rule("s0", 'a', "s1"), rule("s1", 'b', "s1"))

	f.Complete()

	want := "(\n" +
		"{qFALSE, s0, s1},\n" +
		"{'a', 'b'},\n" +
		"{\n" +
		"qFALSE 'a' -> qFALSE,\n" +
		"qFALSE 'b' -> qFALSE,\n" +
		"s0 'a' -> s1,\n" +
		"s0 'b' -> qFALSE,\n" +
		"s1 'a' -> qFALSE,\n" +
		"s1 'b' -> s1\n" +
		"},\n" +
		"s0,\n" +
		"{s1}\n" +
		")"
	assert.Equal(t, want, f.String())
}

func TestCompleteRemovesDeadStates(t *testing.T) {
	f := build(t, []string{"s0", "s1", "trap"}, "ab", "s0", []string{"s1"},
		rule("s0", 'a', "s1"), rule("s0", 'b', "trap"), rule("trap", 'a', "trap"))

	f.Complete()

	assert.False(t, f.HasState("trap"))
	assert.Equal(t, []Rule{rule("s0", 'b', SinkName)}, f.State("s0").RulesOn('b'))
	assertComplete(t, f)
}

func TestCompleteKeepsDeadStartState(t *testing.T) {
	f := build(t, []string{"s0", "s1"}, "a", "s0", nil, rule("s0", 'a', "s1"))

	f.Complete()

	assert.Equal(t, []string{SinkName, "s0"}, f.StateNames())
	assert.Equal(t, "s0", f.Start())
	assert.Equal(t, []Rule{rule(SinkName, 'a', SinkName), rule("s0", 'a', SinkName)}, f.Rules())
}

func TestCompleteDeterminizesFirst(t *testing.T) {
	f := build(t, []string{"s0", "s1", "s2"}, "ab", "s0", []string{"s2"},
		rule("s0", 'a', "s1"), rule("s0", 'a', "s2"), eps("s1", "s2"))

	f.Complete()

	assert.False(t, f.HasEpsilonRules())
	assertComplete(t, f)
	assert.True(t, f.HasState("s1_s2"))
}

func TestCompleteCaseInsensitiveSinkName(t *testing.T) {
	f := New(true)
	f.AddState("s0")
	require.NoError(t, f.AddSymbol('a'))
	require.NoError(t, f.SetStart("s0"))
	require.NoError(t, f.AddAccepting("s0"))

	f.Complete()

	assert.True(t, f.HasState("qfalse"))
	assert.False(t, f.HasState(SinkName))
}

func TestCompleteSinkNameCollision(t *testing.T) {
	f := build(t, []string{"s0", SinkName}, "a", "s0", []string{SinkName},
		rule("s0", 'a', SinkName))

	f.Complete()

	assert.True(t, f.HasState(SinkName))
	assert.True(t, f.HasState("qFALSE2"))
	assert.True(t, f.IsAccepting(SinkName))
	assert.False(t, f.IsAccepting("qFALSE2"))
	assertComplete(t, f)
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := build(t, []string{"s0", "s1"}, "ab", "s0", []string{"s1"},
		rule("s0", 'a', "s1"), rule("s1", 'b', "s1"))
	f.Complete()
	once := f.String()

	// The sink is dead, so a second pass drops and re-adds it.
	f.Complete()

	assert.Equal(t, once, f.String())
}

func TestLiveStates(t *testing.T) {
	f := build(t, []string{"a", "b", "c", "d"}, "x", "a", []string{"c"},
		rule("a", 'x', "b"), rule("b", 'x', "c"), rule("d", 'x', "d"))

	live := f.LiveStates()

	assert.Len(t, live, 3)
	assert.Contains(t, live, "a")
	assert.Contains(t, live, "b")
	assert.Contains(t, live, "c")
	assert.NotContains(t, live, "d")
}

// assertComplete checks that every state has exactly one rule per symbol.
func assertComplete(t *testing.T, f *Fsm) {
	t.Helper()
	for _, s := range f.States() {
		for _, sym := range f.Alphabet() {
			assert.Len(t, s.RulesOn(sym), 1, "state %s symbol %s", s.Name(), sym)
		}
		assert.Equal(t, len(f.Alphabet()), s.RuleCount(), "state %s", s.Name())
	}
}
