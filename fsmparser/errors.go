package fsmparser

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the source holds no tokens at all. It is not
// a failure: callers treat it as a successful run with nothing to do.
var ErrEmptyInput = errors.New("empty input")

// ParseError is the base error type for all fsmparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError represents a lexer-level error (malformed literal, stray '-').
type LexError struct{ ParseError }

// SyntaxError represents a grammar-level error (unexpected token, malformed
// set element, invalid identifier).
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Expected == "" {
		return e.ParseError.Error()
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// SemanticError represents a well-formed description that references an
// undeclared state or symbol, or declares an empty alphabet.
type SemanticError struct {
	ParseError
	Name string // offending state name or quoted symbol, if any
}

// IsLexicalOrSyntax reports whether err is a *LexError or a *SyntaxError.
func IsLexicalOrSyntax(err error) bool {
	var lexErr *LexError
	var synErr *SyntaxError
	return errors.As(err, &lexErr) || errors.As(err, &synErr)
}

// IsSemantic reports whether err is a *SemanticError.
func IsSemantic(err error) bool {
	var semErr *SemanticError
	return errors.As(err, &semErr)
}
