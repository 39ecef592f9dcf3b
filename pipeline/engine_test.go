package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/martinemde/dka/fsm"
	"github.com/martinemde/dka/fsmparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleDFA     = `({s0,s1},{'a'},{s0 'a' -> s1},s0,{s1})`
	exampleEpsilon = `({s0,s1,s2},{'a'},{s0 -> s1, s1 'a' -> s2},s0,{s2})`
	exampleNFA     = `({s0,s1,s2},{'a','b','c'},{s0 'a' -> s1, s0 'a' -> s2, s1 'b' -> s1, s2 'c' -> s2},s0,{s2})`
	examplePartial = `({s0,s1},{'a','b'},{s0 'a' -> s1, s1 'b' -> s1},s0,{s1})`
)

// recordEvents returns an emitter and the slice its events are appended to.
func recordEvents() (*EventEmitter, *[]Event) {
	var events []Event
	emitter := NewEventEmitter()
	emitter.On(func(e Event) { events = append(events, e) })
	return emitter, &events
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestRun_CanonicalOutput(t *testing.T) {
	var out bytes.Buffer
	result, err := Run([]byte(exampleDFA), &out, &RunConfig{})
	require.NoError(t, err)

	assert.Equal(t, "(\n{s0, s1},\n{'a'},\n{\ns0 'a' -> s1\n},\ns0,\n{s1}\n)", out.String())
	assert.Empty(t, result.Stages)
	assert.Nil(t, result.Accepted)
}

func TestRun_NilConfig(t *testing.T) {
	var out bytes.Buffer
	_, err := Run([]byte(exampleDFA), &out, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "s0 'a' -> s1")
}

func TestRun_NoEpsilonRules(t *testing.T) {
	var out bytes.Buffer
	result, err := Run([]byte(exampleEpsilon), &out, &RunConfig{Mode: ModeNoEpsilon})
	require.NoError(t, err)

	assert.Equal(t, "(\n{s0, s1, s2},\n{'a'},\n{\ns0 'a' -> s2,\ns1 'a' -> s2\n},\ns0,\n{s2}\n)", out.String())
	assert.Equal(t, []string{"eliminate_epsilon"}, result.Stages)
}

func TestRun_Determinize(t *testing.T) {
	var out bytes.Buffer
	result, err := Run([]byte(exampleNFA), &out, &RunConfig{Mode: ModeDeterminize})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "s0 'a' -> s1_s2")
	assert.Contains(t, out.String(), "{s1_s2, s2}\n)")
	assert.True(t, result.Fsm.IsDeterministic())
}

func TestRun_Complete(t *testing.T) {
	var out bytes.Buffer
	result, err := Run([]byte(examplePartial), &out, &RunConfig{Mode: ModeComplete})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "{qFALSE, s0, s1},")
	assert.Contains(t, out.String(), "s0 'b' -> qFALSE")
	assert.Equal(t, []string{"eliminate_epsilon", "determinize", "complete"}, result.Stages)
}

func TestRun_CompleteCaseInsensitive(t *testing.T) {
	var out bytes.Buffer
	_, err := Run([]byte(`({S0,S1},{'A','b'},{s0 'a' -> s1, S1 'B' -> s1},S0,{s1})`), &out,
		&RunConfig{Mode: ModeComplete, CaseInsensitive: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "{qfalse, s0, s1},")
	assert.Contains(t, out.String(), "{'a', 'b'},")
}

func TestRun_Analyze(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
		want  string
	}{
		{"accepted", exampleDFA, "a", "1"},
		{"empty string rejected", exampleDFA, "", "0"},
		{"too long rejected", exampleDFA, "aa", "0"},
		{"through epsilon", exampleEpsilon, "a", "1"},
		{"nondeterministic accepted", exampleNFA, "acc", "1"},
		{"nondeterministic rejected", exampleNFA, "ab", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			result, err := Run([]byte(tt.src), &out, &RunConfig{Mode: ModeAnalyze, AnalyzeString: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
			require.NotNil(t, result.Accepted)
			assert.Equal(t, tt.want == "1", *result.Accepted)
		})
	}
}

func TestRun_AnalyzeCaseInsensitiveKeepsInputCase(t *testing.T) {
	var out bytes.Buffer
	result, err := Run([]byte(`({S0,S1},{'A'},{S0 'A' -> S1},S0,{S1})`), &out,
		&RunConfig{Mode: ModeAnalyze, AnalyzeString: "a", CaseInsensitive: true})
	require.NoError(t, err)
	assert.Equal(t, "1", out.String())
	assert.True(t, *result.Accepted)

	out.Reset()
	result, err = Run([]byte(exampleDFA), &out, &RunConfig{Mode: ModeAnalyze, AnalyzeString: "A", CaseInsensitive: true})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, fsm.ErrSymbolNotInAlphabet)
	assert.Empty(t, out.String())
}

func TestRun_AnalyzeSymbolNotInAlphabet(t *testing.T) {
	emitter, events := recordEvents()
	var out bytes.Buffer
	result, err := Run([]byte(exampleDFA), &out, &RunConfig{Mode: ModeAnalyze, AnalyzeString: "b", EventEmitter: emitter})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, fsm.ErrSymbolNotInAlphabet))
	assert.Empty(t, out.String())
	assert.Equal(t, EventRunFailed, (*events)[len(*events)-1].Type)
}

func TestRun_EmptyInput(t *testing.T) {
	emitter, events := recordEvents()
	var out bytes.Buffer
	result, err := Run([]byte("  # nothing\n"), &out, &RunConfig{Mode: ModeComplete, EventEmitter: emitter})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, fsmparser.ErrEmptyInput)
	assert.Empty(t, out.String())
	assert.Empty(t, *events)
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	emitter, events := recordEvents()
	var out bytes.Buffer
	_, err := Run([]byte(`({s0},{'a'},{s0 'a' -> s9},s0,{})`), &out, &RunConfig{Mode: ModeComplete, EventEmitter: emitter})

	require.Error(t, err)
	assert.True(t, fsmparser.IsSemantic(err))
	assert.Empty(t, out.String())
	assert.Equal(t, []EventType{EventRunFailed}, eventTypes(*events))
}

func TestRun_EmitsStageEvents(t *testing.T) {
	emitter, events := recordEvents()
	var out bytes.Buffer
	_, err := Run([]byte(examplePartial), &out, &RunConfig{Mode: ModeComplete, EventEmitter: emitter})
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventParseCompleted,
		EventStageStarted, EventStageCompleted,
		EventStageStarted, EventStageCompleted,
		EventStageStarted, EventStageCompleted,
	}, eventTypes(*events))

	parsed := (*events)[0]
	assert.Equal(t, 2, parsed.Data["states"])
	assert.Equal(t, 2, parsed.Data["symbols"])
	assert.Equal(t, 2, parsed.Data["rules"])

	last := (*events)[len(*events)-1]
	assert.Equal(t, "complete", last.Data["name"])
	assert.Equal(t, 2, last.Data["index"])
	assert.Equal(t, 3, last.Data["states"])
	assert.Equal(t, 6, last.Data["rules"])
}

func TestRun_EmitsAnalyzeEvent(t *testing.T) {
	emitter, events := recordEvents()
	var out bytes.Buffer
	_, err := Run([]byte(exampleDFA), &out, &RunConfig{Mode: ModeAnalyze, AnalyzeString: "a", EventEmitter: emitter})
	require.NoError(t, err)

	last := (*events)[len(*events)-1]
	assert.Equal(t, EventAnalyzeCompleted, last.Type)
	assert.Equal(t, "a", last.Data["input"])
	assert.Equal(t, true, last.Data["accepted"])
}

func TestRun_ExtraTransforms(t *testing.T) {
	var seen []string
	extra := TransformFunc{Label: "inspect", Func: func(f *fsm.Fsm) {
		seen = f.StateNames()
	}}

	var out bytes.Buffer
	result, err := Run([]byte(exampleNFA), &out, &RunConfig{Mode: ModeDeterminize, Transforms: []Transform{extra}})
	require.NoError(t, err)

	assert.Equal(t, []string{"eliminate_epsilon", "determinize", "inspect"}, result.Stages)
	assert.Equal(t, []string{"s0", "s1", "s1_s2", "s2"}, seen)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_WriteError(t *testing.T) {
	_, err := Run([]byte(exampleDFA), failingWriter{}, &RunConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing result")
	assert.Contains(t, err.Error(), "disk full")
}
