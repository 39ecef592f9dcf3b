package fsmparser

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF         TokenKind = iota
	TokenStructOpen            // (
	TokenStructClose           // )
	TokenSet                   // {...}, Literal holds the body without braces
	TokenIdentifier            // any run of characters up to whitespace or ','
	TokenComma                 // ,
)

var tokenNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenStructOpen:  "'('",
	TokenStructClose: "')'",
	TokenSet:         "set",
	TokenIdentifier:  "identifier",
	TokenComma:       "','",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // set body or identifier text, empty for punctuation
	Pos     Position
}

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in characters
	Offset int // 0-based byte offset into source
}
