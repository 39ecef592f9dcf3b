package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/martinemde/dka/fsm"
	"github.com/martinemde/dka/fsmparser"
)

// RunConfig configures a single conversion run.
type RunConfig struct {
	// CaseInsensitive lower-cases state names and symbols while parsing. The
	// analyzed string is never folded.
	CaseInsensitive bool

	// Mode selects the transformation chain. At most one mode applies per run.
	Mode Mode

	// AnalyzeString is the input tested in ModeAnalyze.
	AnalyzeString string

	// Format selects how the resulting automaton is written. Ignored in
	// ModeAnalyze, which always writes "1" or "0".
	Format Format

	// Transforms are extra stages applied after the mode's own stages.
	Transforms []Transform

	// EventEmitter receives run events. If nil, events are dropped.
	EventEmitter *EventEmitter
}

// RunResult contains the results of a run.
type RunResult struct {
	// Fsm is the automaton after all stages.
	Fsm *fsm.Fsm

	// Stages lists the names of the applied transforms, in order.
	Stages []string

	// Accepted is the outcome of ModeAnalyze, nil in every other mode.
	Accepted *bool
}

// Run parses src, applies the configured stages and writes the result to w.
//
// Empty input yields fsmparser.ErrEmptyInput with nothing written. Parse
// errors abort before any output. In ModeAnalyze, an input character outside
// the alphabet yields an error wrapping fsm.ErrSymbolNotInAlphabet.
func Run(src []byte, w io.Writer, config *RunConfig) (*RunResult, error) {
	if config == nil {
		config = &RunConfig{}
	}
	emitter := config.EventEmitter
	started := time.Now()

	fail := func(err error) (*RunResult, error) {
		if !errors.Is(err, fsmparser.ErrEmptyInput) {
			emitter.Emit(RunFailedEvent(err.Error(), time.Since(started)))
		}
		return nil, err
	}

	f, err := fsmparser.Parse(src, fsmparser.Options{CaseInsensitive: config.CaseInsensitive})
	if err != nil {
		return fail(err)
	}
	emitter.Emit(ParseCompletedEvent(len(f.StateNames()), len(f.Alphabet()), f.RuleCount(), time.Since(started)))

	result := &RunResult{Fsm: f}
	stages := append(config.Mode.Transforms(), config.Transforms...)
	for i, stage := range stages {
		emitter.Emit(StageStartedEvent(stage.Name(), i))
		stageStart := time.Now()
		stage.Apply(f)
		emitter.Emit(StageCompletedEvent(stage.Name(), i, len(f.StateNames()), f.RuleCount(), time.Since(stageStart)))
		result.Stages = append(result.Stages, stage.Name())
	}

	if config.Mode == ModeAnalyze {
		accepted, err := f.Accepts(config.AnalyzeString)
		if err != nil {
			return fail(err)
		}
		result.Accepted = &accepted
		emitter.Emit(AnalyzeCompletedEvent(config.AnalyzeString, accepted))

		out := "0"
		if accepted {
			out = "1"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return fail(fmt.Errorf("writing result: %w", err))
		}
		return result, nil
	}

	if err := Encode(w, f, config.Format); err != nil {
		return fail(fmt.Errorf("writing result: %w", err))
	}
	return result, nil
}
