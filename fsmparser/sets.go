package fsmparser

import (
	"fmt"

	"github.com/martinemde/dka/fsm"
)

// setScanner decodes the body of a {...} token. The lexer has already
// stripped comments and checked the shape of every quoted literal and arrow.
type setScanner struct {
	src []rune
	pos int
	at  Position // position of the set token, used for error reporting
}

func newSetScanner(tok Token) *setScanner {
	return &setScanner{src: []rune(tok.Literal), at: tok.Pos}
}

func (s *setScanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *setScanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *setScanner) skipSpace() {
	for !s.atEnd() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// blank reports whether the body holds nothing but whitespace.
func (s *setScanner) blank() bool {
	for _, ch := range s.src {
		if !isSpace(ch) {
			return false
		}
	}
	return true
}

func (s *setScanner) describeNext() string {
	if s.atEnd() {
		return "end of set"
	}
	return fmt.Sprintf("%q", s.peek())
}

func (s *setScanner) syntaxError(expected string) error {
	return &SyntaxError{
		ParseError: ParseError{Pos: s.at},
		Expected:   expected,
		Got:        s.describeNext(),
	}
}

// identifier reads one state name.
func (s *setScanner) identifier() (string, error) {
	s.skipSpace()
	start := s.pos
	for !s.atEnd() && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	if start == s.pos {
		return "", s.syntaxError("state identifier")
	}
	id := string(s.src[start:s.pos])
	if !IsIdentifier(id) {
		return "", invalidIdentifier(id, s.at)
	}
	return id, nil
}

// symbol reads an optional quoted literal: 'x', '''' for the apostrophe, or
// '' for epsilon. The boolean is false when no literal is present.
func (s *setScanner) symbol() (fsm.Symbol, bool, error) {
	s.skipSpace()
	if s.peek() != '\'' {
		return 0, false, nil
	}
	rest := s.src[s.pos:]
	switch {
	case len(rest) >= 4 && rest[1] == '\'' && rest[2] == '\'' && rest[3] == '\'':
		s.pos += 4
		return fsm.Symbol('\''), true, nil
	case len(rest) >= 2 && rest[1] == '\'':
		s.pos += 2
		return fsm.Epsilon, true, nil
	case len(rest) >= 3 && rest[2] == '\'':
		s.pos += 3
		return fsm.Symbol(rest[1]), true, nil
	default:
		return 0, false, s.syntaxError("quoted symbol")
	}
}

// arrow reads '->'.
func (s *setScanner) arrow() error {
	s.skipSpace()
	if s.pos+1 < len(s.src) && s.src[s.pos] == '-' && s.src[s.pos+1] == '>' {
		s.pos += 2
		return nil
	}
	return s.syntaxError("'->'")
}

// separator consumes the ',' after an element. It returns false at the end
// of the set.
func (s *setScanner) separator() (bool, error) {
	s.skipSpace()
	if s.atEnd() {
		return false, nil
	}
	if s.peek() == ',' {
		s.pos++
		return true, nil
	}
	return false, s.syntaxError("',' or end of set")
}

// IsIdentifier reports whether id is a valid state name: a letter, then
// letters, digits or underscores, not ending with an underscore.
func IsIdentifier(id string) bool {
	if id == "" || !isLetter(rune(id[0])) || id[len(id)-1] == '_' {
		return false
	}
	for _, ch := range id {
		if !isIdentPart(ch) {
			return false
		}
	}
	return true
}

func invalidIdentifier(id string, pos Position) error {
	return &SyntaxError{
		ParseError: ParseError{
			Message: fmt.Sprintf("invalid state identifier %q", id),
			Pos:     pos,
		},
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
