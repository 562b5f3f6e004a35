package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/reviewd/internal/config"
	"github.com/dshills/reviewd/internal/gitdiff"
	"github.com/dshills/reviewd/internal/output"
	"github.com/dshills/reviewd/internal/review"
)

var (
	flagPRFile   string
	flagOutput   string
	flagNoLLM    bool
	flagProvider string
	flagModel    string
	flagFormat   string
	flagStaged   bool
	flagUnstaged bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a pull request",
	Long: "Review a pull request from a JSON request file, or review local git\n" +
		"changes with --staged/--unstaged. Prints a summary to stdout and writes\n" +
		"the full result to the output file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}

		req, err := loadRequest()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}
		fmt.Printf("Loaded PR #%d: %s\n", req.PRNumber, req.Title)

		opts := review.Options{
			UseLLM:   !flagNoLLM,
			Provider: cfg.Provider,
			Model:    cfg.Model,
		}
		if flagNoLLM {
			fmt.Println("Running review (LLM: disabled)...")
		} else {
			fmt.Printf("Running review (LLM: %s/%s)...\n", opts.Provider, opts.Model)
		}

		reviewer := review.New(cfg.ReviewConfig(), slog.Default())
		out := reviewer.ReviewPR(context.Background(), req, opts)

		if err := (&output.TextWriter{}).Write(os.Stdout, &out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}

		if err := output.WriteReport(&out, cfg.Format, flagOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitLoadError
			return nil
		}
		fmt.Printf("\nReview output saved to: %s\n", flagOutput)

		// Advisory only: high-severity findings are reported but never change
		// the exit code.
		if out.Summary.HighSeverity > 0 {
			fmt.Printf("\nWarning: %d high-severity issue(s) found\n", out.Summary.HighSeverity)
		}
		return nil
	},
}

// loadRequest builds the review request from --staged, --unstaged, or --pr-file.
func loadRequest() (review.Request, error) {
	switch {
	case flagStaged:
		return gitdiff.Staged()
	case flagUnstaged:
		return gitdiff.Unstaged()
	case flagPRFile != "":
		return loadRequestFile(flagPRFile)
	default:
		return review.Request{}, fmt.Errorf("one of --pr-file, --staged, or --unstaged is required")
	}
}

func loadRequestFile(path string) (review.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return review.Request{}, fmt.Errorf("reading PR file: %w", err)
	}
	var req review.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return review.Request{}, fmt.Errorf("parsing PR file: %w", err)
	}
	return req, nil
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	return m
}

func init() {
	reviewCmd.Flags().StringVar(&flagPRFile, "pr-file", "", "Path to PR JSON request file")
	reviewCmd.Flags().StringVar(&flagOutput, "output", "output/review_results.json", "Output file path")
	reviewCmd.Flags().BoolVar(&flagNoLLM, "no-llm", false, "Skip LLM analysis, use rule-based checks only")
	reviewCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, gemini, local)")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output file format (text, json, markdown)")
	reviewCmd.Flags().BoolVar(&flagStaged, "staged", false, "Review staged changes from the local git repository")
	reviewCmd.Flags().BoolVar(&flagUnstaged, "unstaged", false, "Review unstaged changes from the local git repository")
}
