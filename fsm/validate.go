package fsm

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the automaton is unusable as described.
	Error Severity = iota
	// Warning means the automaton works but part of it has no effect.
	Warning
	// Info is an informational note about the automaton's shape.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule       string   // lint rule identifier (e.g., "dead_state")
	Severity   Severity // ERROR, WARNING, or INFO
	Message    string   // human-readable description
	State      string   // related state (optional)
	Transition *Rule    // related transition (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.State != "" {
		fmt.Fprintf(&b, " (state: %s)", d.State)
	}
	if d.Transition != nil {
		fmt.Fprintf(&b, " (rule: %s)", d.Transition)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(f *Fsm) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the automaton.
// Returns all diagnostics regardless of severity.
func Validate(f *Fsm, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(f)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(f *Fsm, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(f, extraRules...)

	var errs []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	if len(errs) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errs}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		invariantRule{},
		noAcceptingRule{},
		unreachableRule{},
		deadStateRule{},
		epsilonRule{},
		nondeterministicRule{},
		incompleteRule{},
		unusedSymbolRule{},
	}
}

// --- Rules ---

// invariantRule reports model invariant violations. Automata built through
// the fsmparser package never trigger it.
type invariantRule struct{}

func (invariantRule) Name() string { return "invariant" }

func (invariantRule) Apply(f *Fsm) []Diagnostic {
	err := f.Check()
	if err == nil {
		return nil
	}
	var diags []Diagnostic
	for _, line := range strings.Split(err.Error(), "\n") {
		diags = append(diags, Diagnostic{
			Rule:     "invariant",
			Severity: Error,
			Message:  line,
		})
	}
	return diags
}

type noAcceptingRule struct{}

func (noAcceptingRule) Name() string { return "no_accepting_state" }

func (noAcceptingRule) Apply(f *Fsm) []Diagnostic {
	if len(f.accepting) > 0 {
		return nil
	}
	return []Diagnostic{{
		Rule:     "no_accepting_state",
		Severity: Warning,
		Message:  "the automaton has no accepting state and accepts no string",
	}}
}

type unreachableRule struct{}

func (unreachableRule) Name() string { return "unreachable_state" }

func (unreachableRule) Apply(f *Fsm) []Diagnostic {
	if !f.HasState(f.start) {
		// invariant rule will catch this; skip reachability.
		return nil
	}

	visited := map[string]bool{f.start: true}
	stack := []string{f.start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range f.states[cur].Rules() {
			if !visited[r.To] && f.HasState(r.To) {
				visited[r.To] = true
				stack = append(stack, r.To)
			}
		}
	}

	var diags []Diagnostic
	for _, name := range f.StateNames() {
		if !visited[name] {
			diags = append(diags, Diagnostic{
				Rule:     "unreachable_state",
				Severity: Warning,
				Message:  fmt.Sprintf("state %q is not reachable from start state %q", name, f.start),
				State:    name,
			})
		}
	}
	return diags
}

type deadStateRule struct{}

func (deadStateRule) Name() string { return "dead_state" }

func (deadStateRule) Apply(f *Fsm) []Diagnostic {
	if len(f.accepting) == 0 {
		// no_accepting_state already covers every state.
		return nil
	}

	live := f.LiveStates()
	var diags []Diagnostic
	for _, name := range f.StateNames() {
		if _, ok := live[name]; ok {
			continue
		}
		if isSink(f.states[name], f) {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     "dead_state",
			Severity: Warning,
			Message:  fmt.Sprintf("no accepting state is reachable from state %q", name),
			State:    name,
		})
	}
	return diags
}

// isSink reports whether s loops to itself on every alphabet symbol and has no
// other rules, which is the one dead state a complete automaton needs.
func isSink(s *State, f *Fsm) bool {
	if s.RuleCount() != len(f.alphabet) {
		return false
	}
	for _, r := range s.Rules() {
		if r.To != s.Name() || r.Symbol.IsEpsilon() {
			return false
		}
	}
	return true
}

type epsilonRule struct{}

func (epsilonRule) Name() string { return "epsilon_rule" }

func (epsilonRule) Apply(f *Fsm) []Diagnostic {
	var diags []Diagnostic
	for _, r := range f.Rules() {
		if !r.Symbol.IsEpsilon() {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:       "epsilon_rule",
			Severity:   Info,
			Message:    "epsilon rule; eliminate epsilon rules before testing strings",
			State:      r.From,
			Transition: &r,
		})
	}
	return diags
}

type nondeterministicRule struct{}

func (nondeterministicRule) Name() string { return "nondeterministic" }

func (nondeterministicRule) Apply(f *Fsm) []Diagnostic {
	var diags []Diagnostic
	for _, s := range f.States() {
		for _, sym := range s.Symbols() {
			if sym.IsEpsilon() || len(s.rules[sym]) < 2 {
				continue
			}
			diags = append(diags, Diagnostic{
				Rule:     "nondeterministic",
				Severity: Info,
				Message:  fmt.Sprintf("%d rules on symbol %s", len(s.rules[sym]), sym),
				State:    s.Name(),
			})
		}
	}
	return diags
}

type incompleteRule struct{}

func (incompleteRule) Name() string { return "incomplete" }

func (incompleteRule) Apply(f *Fsm) []Diagnostic {
	var diags []Diagnostic
	alphabet := f.Alphabet()
	for _, s := range f.States() {
		var missing []string
		for _, sym := range alphabet {
			if len(s.rules[sym]) == 0 {
				missing = append(missing, sym.String())
			}
		}
		if len(missing) == 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			Rule:     "incomplete",
			Severity: Info,
			Message:  fmt.Sprintf("no rule on %s", strings.Join(missing, ", ")),
			State:    s.Name(),
		})
	}
	return diags
}

type unusedSymbolRule struct{}

func (unusedSymbolRule) Name() string { return "unused_symbol" }

func (unusedSymbolRule) Apply(f *Fsm) []Diagnostic {
	used := make(map[Symbol]bool)
	for _, s := range f.states {
		for sym := range s.rules {
			used[sym] = true
		}
	}

	var diags []Diagnostic
	for _, sym := range f.Alphabet() {
		if !used[sym] {
			diags = append(diags, Diagnostic{
				Rule:     "unused_symbol",
				Severity: Info,
				Message:  fmt.Sprintf("symbol %s is not used by any rule", sym),
			})
		}
	}
	return diags
}
