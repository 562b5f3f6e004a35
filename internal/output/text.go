package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/reviewd/internal/review"
)

// TextWriter outputs a human-readable console summary.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, out *review.Output) error {
	ew := &errWriter{w: w}

	rule := strings.Repeat("=", 60)
	ew.println(rule)
	ew.printf("CODE REVIEW SUMMARY - PR #%d\n", out.PRNumber)
	ew.println(rule)

	s := out.Summary
	ew.printf("\nTotal Issues: %d\n", s.TotalIssues)
	ew.printf("  High Severity: %d\n", s.HighSeverity)
	ew.printf("  Medium Severity: %d\n", s.MediumSeverity)
	ew.printf("  Low Severity: %d\n", s.LowSeverity)
	ew.printf("\nReview Time: %.2fs\n", s.ReviewTimeSeconds)
	if s.LLMUsed {
		ew.println("LLM Used: Yes")
		if s.ModelName != "" {
			ew.printf("Model: %s\n", s.ModelName)
		}
	} else {
		ew.println("LLM Used: No (rule-based only)")
	}

	if len(out.Issues) == 0 {
		ew.println("\nNo issues found!")
		ew.println(rule)
		return ew.err
	}

	ew.printf("\n%s\n", strings.Repeat("-", 60))
	ew.println("ISSUES FOUND:")
	ew.println(strings.Repeat("-", 60))

	for i, issue := range out.Issues {
		ew.printf("\n%d. [%s] %s\n", i+1, strings.ToUpper(string(issue.Severity)), issue.Kind)
		ew.printf("   %s\n", issue.Message)
		ew.printf("   Confidence: %.2f\n", issue.Confidence)
		if issue.FilePath != "" {
			ew.printf("   File: %s\n", issue.FilePath)
		}
		if issue.LineNumber > 0 {
			ew.printf("   Line: %d\n", issue.LineNumber)
		}
	}

	ew.printf("\n%s\n", rule)
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
