package fsm

import (
	"errors"
	"fmt"
)

// ErrSymbolNotInAlphabet is wrapped by *SymbolError.
var ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")

// SymbolError reports an input character outside the alphabet.
type SymbolError struct {
	Symbol Symbol
	Offset int // byte offset into the input string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("input offset %d: %s %s", e.Offset, ErrSymbolNotInAlphabet, e.Symbol)
}

func (e *SymbolError) Unwrap() error { return ErrSymbolNotInAlphabet }

// Accepts runs input through the automaton from the start state and reports
// whether it ends in an accepting state. Every character read must be in the
// alphabet, otherwise a *SymbolError is returned. A missing transition
// rejects immediately without reading the rest of the input.
//
// The automaton is expected to be deterministic; with several rules on one
// symbol the first one added is followed. The input is read as is, also for
// case-insensitive automata: only names and symbols of the description are
// lower-cased, so an upper-case character is outside a folded alphabet.
func (f *Fsm) Accepts(input string) (bool, error) {
	cur := f.states[f.start]
	for i, ch := range input {
		sym := Symbol(ch)
		if !f.HasSymbol(sym) {
			return false, &SymbolError{Symbol: sym, Offset: i}
		}
		rules := cur.rules[sym]
		if len(rules) == 0 {
			return false, nil
		}
		cur = f.states[rules[0].To]
	}
	return f.IsAccepting(cur.Name()), nil
}
