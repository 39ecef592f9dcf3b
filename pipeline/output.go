package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/martinemde/dka/fsm"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding of an automaton.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, yaml or json)", s)
	}
}

// Encode writes f to w. Text output is the canonical serialization with no
// trailing newline; YAML and JSON encode fsm.Document.
func Encode(w io.Writer, f *fsm.Fsm, format Format) error {
	switch format {
	case "", FormatText:
		_, err := f.WriteTo(w)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f.Document()); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f.Document())
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
