package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// Exit codes. Findings never affect the exit code: the review is advisory
// only, so only a load/parse failure is an error.
const (
	ExitSuccess   = 0
	ExitLoadError = 1
)

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:   "reviewd",
	Short: "Advisory code review for pull request diffs",
	Long: "Reviewd reviews pull request diffs with deterministic rule-based checks\n" +
		"and optional LLM analysis, producing a prioritized list of advisory issues.\n" +
		"It never approves, blocks, or modifies a change.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(flagLogLevel)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	// Provider credentials may live in a local .env file; a missing file is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitLoadError
	}

	return exitCode
}

func configureLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reviewd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "reviewd version %s\n", version)
	},
}
