package fsm

import "unicode"

// Symbol is one input character, or Epsilon for a transition that consumes
// no input.
type Symbol rune

// Epsilon marks an empty-string transition. It is never part of an alphabet.
const Epsilon Symbol = -1

// IsEpsilon reports whether s is the epsilon marker.
func (s Symbol) IsEpsilon() bool { return s == Epsilon }

// String renders s as it appears in the text format: 'a', '''' for the
// apostrophe and '' for epsilon.
func (s Symbol) String() string {
	switch s {
	case Epsilon:
		return "''"
	case '\'':
		return "''''"
	default:
		return "'" + string(rune(s)) + "'"
	}
}

// Fold returns the case-insensitive form of s.
func (s Symbol) Fold() Symbol {
	if s == Epsilon {
		return s
	}
	return Symbol(unicode.ToLower(rune(s)))
}
