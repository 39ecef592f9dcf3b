package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/martinemde/dka/fsm"
	"github.com/martinemde/dka/fsmparser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Report structural findings about an automaton",
	Long: `Parse an automaton and report unreachable and dead states, epsilon rules,
nondeterministic and missing transitions, and unused symbols. Exits non-zero on
errors, or on warnings with --strict.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().Bool("strict", false, "Fail on warnings as well as errors")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")

	path := viper.GetString("input")
	if len(args) == 1 {
		path = args[0]
	}
	src, err := readInput(path)
	if err != nil {
		return err
	}

	f, err := fsmparser.Parse(src, fsmparser.Options{CaseInsensitive: viper.GetBool("case_insensitive")})
	if errors.Is(err, fsmparser.ErrEmptyInput) {
		return nil
	}
	if err != nil {
		return err
	}

	diags, err := fsm.ValidateOrError(f)
	printDiagnostics(cmd.OutOrStdout(), diags)
	return lintResult(diags, err, strict)
}

// lintResult turns validation findings into the command's error: any
// error-severity finding fails, warnings fail only in strict mode.
func lintResult(diags []fsm.Diagnostic, err error, strict bool) error {
	if err != nil {
		return &exitError{code: exitLint, err: err}
	}
	if !strict {
		return nil
	}
	warnings := 0
	for _, d := range diags {
		if d.Severity == fsm.Warning {
			warnings++
		}
	}
	if warnings > 0 {
		return &exitError{code: exitLint, err: fmt.Errorf("lint found %d warning(s) in strict mode", warnings)}
	}
	return nil
}

// printDiagnostics prints one line per finding followed by a summary.
func printDiagnostics(w io.Writer, diags []fsm.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d)
	}
	fmt.Fprintf(w, "%d finding(s)\n", len(diags))
}
