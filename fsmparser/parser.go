package fsmparser

import (
	"fmt"
	"strings"

	"github.com/martinemde/dka/fsm"
)

// Options controls how source text is interpreted.
type Options struct {
	// CaseInsensitive lower-cases every state name and symbol where it is
	// read, so declarations and references match regardless of case.
	CaseInsensitive bool
}

// Parse parses automaton source text and returns a validated *fsm.Fsm.
// Returns ErrEmptyInput for source without tokens, and a *LexError,
// *SyntaxError or *SemanticError on failure. No partial automaton is
// returned on error.
func Parse(src []byte, opts Options) (*fsm.Fsm, error) {
	p := &parser{
		lex:  NewLexer(src),
		opts: opts,
		fsm:  fsm.New(opts.CaseInsensitive),
	}
	f, err := p.parseFsm()
	if err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	lex  *Lexer
	opts Options
	fsm  *fsm.Fsm
}

func describe(tok Token) string {
	if tok.Literal != "" {
		return fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
	}
	return tok.Kind.String()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        describe(tok),
		}
	}
	return tok, nil
}

func (p *parser) name(id string) string {
	if p.opts.CaseInsensitive {
		return strings.ToLower(id)
	}
	return id
}

func (p *parser) symbol(sym fsm.Symbol) fsm.Symbol {
	if p.opts.CaseInsensitive {
		return sym.Fold()
	}
	return sym
}

func semanticError(pos Position, name string, cause error) error {
	return &SemanticError{
		ParseError: ParseError{Message: cause.Error(), Pos: pos, Cause: cause},
		Name:       name,
	}
}

// parseFsm parses '(' States ',' Alphabet ',' Rules ',' Start ',' Accepting ')' EOF.
func (p *parser) parseFsm() (*fsm.Fsm, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenEOF {
		return nil, ErrEmptyInput
	}
	if tok.Kind != TokenStructOpen {
		return nil, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   TokenStructOpen.String(),
			Got:        describe(tok),
		}
	}

	sections := []func() error{
		p.parseStates,
		p.parseAlphabet,
		p.parseRules,
		p.parseStart,
		p.parseAccepting,
	}
	for i, section := range sections {
		if i > 0 {
			if _, err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
		if err := section(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenStructClose); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return p.fsm, nil
}

// parseStates parses the set of state identifiers. Duplicates collapse and
// the set may be empty.
func (p *parser) parseStates() error {
	tok, err := p.expect(TokenSet)
	if err != nil {
		return err
	}
	s := newSetScanner(tok)
	if s.blank() {
		return nil
	}
	for {
		id, err := s.identifier()
		if err != nil {
			return err
		}
		p.fsm.AddState(p.name(id))

		more, err := s.separator()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// parseAlphabet parses the set of quoted symbols. It must not be empty.
func (p *parser) parseAlphabet() error {
	tok, err := p.expect(TokenSet)
	if err != nil {
		return err
	}
	s := newSetScanner(tok)
	if s.blank() {
		return semanticError(tok.Pos, "", fsm.ErrEmptyAlphabet)
	}
	for {
		sym, ok, err := s.symbol()
		if err != nil {
			return err
		}
		if !ok || sym.IsEpsilon() {
			return s.syntaxError("quoted symbol")
		}
		if err := p.fsm.AddSymbol(p.symbol(sym)); err != nil {
			return semanticError(tok.Pos, sym.String(), err)
		}

		more, err := s.separator()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// parseRules parses the set of rules `from 'sym' -> to`. A missing or empty
// quoted symbol denotes an epsilon rule. Both endpoints and the symbol must
// already be declared. The set may be empty.
func (p *parser) parseRules() error {
	tok, err := p.expect(TokenSet)
	if err != nil {
		return err
	}
	s := newSetScanner(tok)
	if s.blank() {
		return nil
	}
	for {
		from, err := s.identifier()
		if err != nil {
			return err
		}
		sym, ok, err := s.symbol()
		if err != nil {
			return err
		}
		if !ok {
			sym = fsm.Epsilon
		}
		if err := s.arrow(); err != nil {
			return err
		}
		to, err := s.identifier()
		if err != nil {
			return err
		}

		rule := fsm.Rule{From: p.name(from), Symbol: p.symbol(sym), To: p.name(to)}
		if _, err := p.fsm.AddRule(rule); err != nil {
			return semanticError(tok.Pos, rule.String(), err)
		}

		more, err := s.separator()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// parseStart parses the start state identifier.
func (p *parser) parseStart() error {
	tok, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}
	if !IsIdentifier(tok.Literal) {
		return invalidIdentifier(tok.Literal, tok.Pos)
	}
	name := p.name(tok.Literal)
	if err := p.fsm.SetStart(name); err != nil {
		return semanticError(tok.Pos, name, err)
	}
	return nil
}

// parseAccepting parses the set of accepting states. The set may be empty.
func (p *parser) parseAccepting() error {
	tok, err := p.expect(TokenSet)
	if err != nil {
		return err
	}
	s := newSetScanner(tok)
	if s.blank() {
		return nil
	}
	for {
		id, err := s.identifier()
		if err != nil {
			return err
		}
		name := p.name(id)
		if err := p.fsm.AddAccepting(name); err != nil {
			return semanticError(tok.Pos, name, err)
		}

		more, err := s.separator()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
