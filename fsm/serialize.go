package fsm

import (
	"io"
	"strings"
)

// String renders the automaton in the canonical text format. States, symbols,
// rules and accepting states are sorted, so equal automata always render
// identically:
//
//	(
//	{s0, s1},
//	{'a', 'b'},
//	{
//	s0 'a' -> s1,
//	s1 'b' -> s0
//	},
//	s0,
//	{s1}
//	)
func (f *Fsm) String() string {
	var b strings.Builder

	b.WriteString("(\n")

	b.WriteString("{")
	b.WriteString(strings.Join(f.StateNames(), ", "))
	b.WriteString("},\n")

	alphabet := f.Alphabet()
	symbols := make([]string, len(alphabet))
	for i, sym := range alphabet {
		symbols[i] = sym.String()
	}
	b.WriteString("{")
	b.WriteString(strings.Join(symbols, ", "))
	b.WriteString("},\n")

	rules := f.Rules()
	rendered := make([]string, len(rules))
	for i, r := range rules {
		rendered[i] = r.String()
	}
	b.WriteString("{\n")
	if len(rendered) > 0 {
		b.WriteString(strings.Join(rendered, ",\n"))
		b.WriteString("\n")
	}
	b.WriteString("},\n")

	b.WriteString(f.start)
	b.WriteString(",\n")

	b.WriteString("{")
	b.WriteString(strings.Join(f.AcceptingStates(), ", "))
	b.WriteString("}\n")

	b.WriteString(")")
	return b.String()
}

// WriteTo writes the canonical text form to w, without a trailing newline.
func (f *Fsm) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}
