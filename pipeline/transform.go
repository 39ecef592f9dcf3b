package pipeline

import (
	"github.com/martinemde/dka/fsm"
)

// Transform is one stage of a run: a whole-graph rewrite of the automaton.
// Transforms replace the graph in a single step and cannot fail on a parsed
// automaton.
type Transform interface {
	// Name identifies the stage in events and logs.
	Name() string
	// Apply rewrites the automaton in place.
	Apply(f *fsm.Fsm)
}

// TransformFunc is an adapter to use a function as a Transform.
type TransformFunc struct {
	Label string
	Func  func(f *fsm.Fsm)
}

// Name implements Transform.
func (t TransformFunc) Name() string { return t.Label }

// Apply implements Transform.
func (t TransformFunc) Apply(f *fsm.Fsm) { t.Func(f) }

// EpsilonElimination removes epsilon rules.
type EpsilonElimination struct{}

func (EpsilonElimination) Name() string     { return "eliminate_epsilon" }
func (EpsilonElimination) Apply(f *fsm.Fsm) { f.EliminateEpsilon() }

// Determinization applies the subset construction.
type Determinization struct{}

func (Determinization) Name() string     { return "determinize" }
func (Determinization) Apply(f *fsm.Fsm) { f.Determinize() }

// Completion removes dead states and adds the sink state.
type Completion struct{}

func (Completion) Name() string     { return "complete" }
func (Completion) Apply(f *fsm.Fsm) { f.Complete() }

// Mode selects which transformation chain a run applies.
type Mode string

const (
	ModeNone        Mode = ""
	ModeNoEpsilon   Mode = "no-epsilon-rules"
	ModeDeterminize Mode = "determinize"
	ModeComplete    Mode = "wsfa"
	ModeAnalyze     Mode = "analyze"
)

// Transforms returns the ordered stages for the mode. Every mode past
// epsilon elimination includes the stages before it.
func (m Mode) Transforms() []Transform {
	switch m {
	case ModeNoEpsilon:
		return []Transform{EpsilonElimination{}}
	case ModeDeterminize, ModeAnalyze:
		return []Transform{EpsilonElimination{}, Determinization{}}
	case ModeComplete:
		return []Transform{EpsilonElimination{}, Determinization{}, Completion{}}
	default:
		return nil
	}
}

// ApplyTransforms applies a slice of transforms to an automaton in order.
func ApplyTransforms(f *fsm.Fsm, transforms []Transform) {
	for _, t := range transforms {
		t.Apply(f)
	}
}
