package fsmparser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// lexState is the state of the character-level scanner inside one call to Next.
type lexState int

const (
	lexIdle lexState = iota
	lexLineComment
	lexSetBody
	lexSetComment
	lexCharBegin  // after the opening quote
	lexCharClosed // after two quotes: epsilon, or the start of ''''
	lexCharEnd    // after the quoted character, expecting the closing quote
	lexArrow      // after '-' inside a set body
	lexIdentifier
	lexIdentifierComment
)

// Lexer tokenizes automaton source text into a stream of tokens.
//
// Between calls the lexer keeps only its scan position. A comma that ends an
// identifier is left unconsumed so the following call returns it.
type Lexer struct {
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // current column (1-based)
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRune(l.src[l.pos:])
	return ch
}

func (l *Lexer) advance() rune {
	ch, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func lexError(pos Position, format string, args ...any) error {
	return &LexError{ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}}
}

// Next returns the next token and advances the lexer. Malformed input yields
// a *LexError.
func (l *Lexer) Next() (Token, error) {
	state := lexIdle
	var sb strings.Builder
	var start Position // position of the token being built

	for !l.atEnd() {
		pos := l.currentPos()
		ch := l.peek()

		switch state {
		case lexIdle:
			l.advance()
			switch {
			case ch == '#':
				state = lexLineComment
			case ch == '(':
				return Token{Kind: TokenStructOpen, Pos: pos}, nil
			case ch == ')':
				return Token{Kind: TokenStructClose, Pos: pos}, nil
			case ch == ',':
				return Token{Kind: TokenComma, Pos: pos}, nil
			case ch == '{':
				state = lexSetBody
				start = pos
			case isSpace(ch):
			default:
				state = lexIdentifier
				start = pos
				sb.WriteRune(ch)
			}

		case lexLineComment:
			l.advance()
			if ch == '\n' {
				state = lexIdle
			}

		case lexSetComment:
			l.advance()
			if ch == '\n' {
				state = lexSetBody
			}

		case lexIdentifierComment:
			l.advance()
			if ch == '\n' {
				state = lexIdentifier
			}

		case lexSetBody:
			l.advance()
			switch ch {
			case '#':
				state = lexSetComment
			case '}':
				return Token{Kind: TokenSet, Literal: sb.String(), Pos: start}, nil
			case '\'':
				state = lexCharBegin
				sb.WriteRune(ch)
			case '-':
				state = lexArrow
				sb.WriteRune(ch)
			default:
				sb.WriteRune(ch)
			}

		case lexCharBegin:
			l.advance()
			switch ch {
			case '\'':
				state = lexCharClosed
			case '#':
				return Token{}, lexError(pos, "comment marker '#' inside quoted literal")
			default:
				state = lexCharEnd
			}
			sb.WriteRune(ch)

		case lexCharEnd:
			l.advance()
			if ch != '\'' {
				return Token{}, lexError(pos, "quoted literal must hold exactly one character, found %q", ch)
			}
			sb.WriteRune(ch)
			state = lexSetBody

		case lexCharClosed:
			l.advance()
			switch {
			case ch == '\'':
				// third quote of ''''; the fourth is checked in lexCharEnd
				sb.WriteRune(ch)
				state = lexCharEnd
			case ch == '-':
				sb.WriteRune(ch)
				state = lexArrow
			case isSpace(ch):
				sb.WriteRune(ch)
				state = lexSetBody
			default:
				return Token{}, lexError(pos, "unexpected %q after empty quotes", ch)
			}

		case lexArrow:
			l.advance()
			if ch != '>' {
				return Token{}, lexError(pos, "expected '>' after '-', found %q", ch)
			}
			sb.WriteRune(ch)
			state = lexSetBody

		case lexIdentifier:
			switch {
			case ch == ',':
				return Token{Kind: TokenIdentifier, Literal: sb.String(), Pos: start}, nil
			case isSpace(ch):
				l.advance()
				return Token{Kind: TokenIdentifier, Literal: sb.String(), Pos: start}, nil
			case ch == '#':
				l.advance()
				state = lexIdentifierComment
			default:
				l.advance()
				sb.WriteRune(ch)
			}
		}
	}

	switch state {
	case lexIdentifier, lexIdentifierComment:
		return Token{Kind: TokenIdentifier, Literal: sb.String(), Pos: start}, nil
	case lexIdle, lexLineComment:
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	default:
		return Token{}, lexError(start, "unterminated set, missing '}'")
	}
}
