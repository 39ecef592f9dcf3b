// Package fsmparser reads the textual description of a finite-state automaton
// and builds a validated *fsm.Fsm from it.
//
// The accepted text is a single five-tuple:
//
//	( {s1, s2} , {'a', 'b'} , { s1 'a' -> s2, s2 -> s1 } , s1 , {s2} )
//
// holding, in order, the set of states, the input alphabet, the rules, the
// start state and the set of accepting states. A rule without a quoted symbol
// (or with empty quotes) is an epsilon rule. The apostrophe symbol is written
// as ''''. Everything from '#' to the end of the line is a comment, except
// inside a quoted literal.
//
// Parsing happens in two layers:
//
//   - Lexer: a character-level state machine producing structural tokens.
//     The body of each {...} set is returned as one raw token.
//   - Parser: consumes tokens in the fixed tuple order and decodes each set
//     body with a small second-phase scanner, checking every reference
//     against what was declared before it.
//
// Usage:
//
//	f, err := fsmparser.Parse(src, fsmparser.Options{})
//	if errors.Is(err, fsmparser.ErrEmptyInput) {
//	    return nil // nothing to do
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(f)
package fsmparser
