package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "dka",
	Short: "Finite automaton converter",
	Long: `dka reads a finite automaton in the ({states}, {alphabet}, {rules}, start, {accepting})
text format and prints it back in canonical form, optionally after removing epsilon
rules (-e), determinizing (-d) or completing (--wsfa) it. With --analyze-string it
prints 1 if the determinized automaton accepts the string and 0 otherwise.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(viper.GetBool("verbose"))
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("input", "", "Input file (default: stdin)")
	rootCmd.PersistentFlags().BoolP("case-insensitive", "i", false, "Treat state names and symbols case-insensitively")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log parse and transformation stages to stderr")

	_ = viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	_ = viper.BindPFlag("case_insensitive", rootCmd.PersistentFlags().Lookup("case-insensitive"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: exitBadArgs, err: err}
	})
}

// initConfig loads an optional .env file and binds DKA_* environment variables.
func initConfig() {
	envFile := os.Getenv("DKA_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Skipping env file", "path", envFile, "error", err)
	}

	viper.SetEnvPrefix("DKA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
