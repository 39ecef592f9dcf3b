package main

import (
	"errors"

	"github.com/martinemde/dka/fsm"
	"github.com/martinemde/dka/fsmparser"
)

// Process exit codes.
const (
	exitOK        = 0
	exitBadArgs   = 1
	exitInput     = 2
	exitOutput    = 3
	exitLint      = 4
	exitSyntax    = 60
	exitSemantics = 61
	exitSymbol    = 62
)

// exitError attaches an exit code to an error raised outside the core
// packages (arguments, files, lint findings).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by the command tree to a process exit code.
// Errors cobra raises itself (unknown flags, conflicting flags, stray
// arguments) fall through to exitBadArgs.
func exitCode(err error) int {
	var exitErr *exitError
	switch {
	case err == nil, errors.Is(err, fsmparser.ErrEmptyInput):
		return exitOK
	case errors.As(err, &exitErr):
		return exitErr.code
	case fsmparser.IsLexicalOrSyntax(err):
		return exitSyntax
	case fsmparser.IsSemantic(err):
		return exitSemantics
	case errors.Is(err, fsm.ErrSymbolNotInAlphabet):
		return exitSymbol
	default:
		return exitBadArgs
	}
}
