package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/martinemde/dka/fsmparser"
	"github.com/martinemde/dka/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().String("output", "", "Output file (default: stdout)")
	rootCmd.Flags().BoolP("no-epsilon-rules", "e", false, "Remove epsilon rules")
	rootCmd.Flags().BoolP("determinization", "d", false, "Remove epsilon rules and determinize")
	rootCmd.Flags().Bool("wsfa", false, "Remove epsilon rules, determinize and complete the automaton")
	rootCmd.Flags().String("analyze-string", "", "Print 1 if the determinized automaton accepts the string, 0 otherwise")
	rootCmd.Flags().String("format", string(pipeline.FormatText), "Output format: text, yaml or json")

	rootCmd.MarkFlagsMutuallyExclusive("no-epsilon-rules", "determinization", "wsfa", "analyze-string")

	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	mode, err := selectMode(cmd)
	if err != nil {
		return &exitError{code: exitBadArgs, err: err}
	}
	analyze, _ := cmd.Flags().GetString("analyze-string")
	format, err := pipeline.ParseFormat(viper.GetString("format"))
	if err != nil {
		return &exitError{code: exitBadArgs, err: err}
	}

	src, err := readInput(viper.GetString("input"))
	if err != nil {
		return err
	}

	sink, err := openOutput(viper.GetString("output"))
	if err != nil {
		return err
	}
	defer sink.Close()

	emitter := pipeline.NewEventEmitter()
	emitter.On(logEventListener(slog.Default()))

	var buf bytes.Buffer
	_, err = pipeline.Run(src, &buf, &pipeline.RunConfig{
		CaseInsensitive: viper.GetBool("case_insensitive"),
		Mode:            mode,
		AnalyzeString:   analyze,
		Format:          format,
		EventEmitter:    emitter,
	})
	if errors.Is(err, fsmparser.ErrEmptyInput) {
		slog.Debug("Empty input, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := buf.WriteTo(sink); err != nil {
		return &exitError{code: exitOutput, err: fmt.Errorf("writing output: %w", err)}
	}
	return nil
}

// selectMode maps the transformation flags to a pipeline mode. Cobra has
// already rejected combinations of them.
func selectMode(cmd *cobra.Command) (pipeline.Mode, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("analyze-string"):
		return pipeline.ModeAnalyze, nil
	case flags.Changed("wsfa"):
		return boolMode(cmd, "wsfa", pipeline.ModeComplete)
	case flags.Changed("determinization"):
		return boolMode(cmd, "determinization", pipeline.ModeDeterminize)
	case flags.Changed("no-epsilon-rules"):
		return boolMode(cmd, "no-epsilon-rules", pipeline.ModeNoEpsilon)
	default:
		return pipeline.ModeNone, nil
	}
}

func boolMode(cmd *cobra.Command, flag string, mode pipeline.Mode) (pipeline.Mode, error) {
	on, err := cmd.Flags().GetBool(flag)
	if err != nil {
		return pipeline.ModeNone, err
	}
	if !on {
		return pipeline.ModeNone, nil
	}
	return mode, nil
}

// readInput reads the whole input: the named file, or stdin for "" and "-".
func readInput(path string) ([]byte, error) {
	var (
		src []byte
		err error
	)
	if path == "" || path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &exitError{code: exitInput, err: fmt.Errorf("reading input: %w", err)}
	}
	return src, nil
}

// openOutput opens the named file for writing, or stdout for "" and "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, &exitError{code: exitOutput, err: fmt.Errorf("opening output: %w", err)}
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// logEventListener returns an event listener that logs run progress.
func logEventListener(logger *slog.Logger) func(pipeline.Event) {
	return func(e pipeline.Event) {
		switch e.Type {
		case pipeline.EventParseCompleted:
			logger.Debug("Parsed automaton",
				"states", e.Data["states"],
				"symbols", e.Data["symbols"],
				"rules", e.Data["rules"],
				"duration_ms", e.Data["duration_ms"])

		case pipeline.EventStageStarted:
			logger.Debug("Stage started", "stage", e.Data["name"], "index", e.Data["index"])

		case pipeline.EventStageCompleted:
			logger.Debug("Stage completed",
				"stage", e.Data["name"],
				"states", e.Data["states"],
				"rules", e.Data["rules"],
				"duration_ms", e.Data["duration_ms"])

		case pipeline.EventAnalyzeCompleted:
			logger.Debug("Analyzed string", "input", e.Data["input"], "accepted", e.Data["accepted"])

		case pipeline.EventRunFailed:
			logger.Debug("Run failed", "error", e.Data["error"])

		default:
			logger.Debug("Event", "type", e.Type)
		}
	}
}
