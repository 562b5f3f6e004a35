package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/reviewd/internal/review"
)

// MarkdownWriter outputs a report suitable for pasting into a PR comment.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, out *review.Output) error {
	ew := &errWriter{w: w}

	ew.printf("# Code Review - PR #%d\n\n", out.PRNumber)

	s := out.Summary
	ew.printf("**%d issues** (%d high, %d medium, %d low)",
		s.TotalIssues, s.HighSeverity, s.MediumSeverity, s.LowSeverity)
	if s.LLMUsed {
		ew.printf(" — reviewed with %s", s.ModelName)
	} else {
		ew.printf(" — rule-based checks only")
	}
	ew.println("\n")

	if len(out.Issues) == 0 {
		ew.println("No issues found.")
		return ew.err
	}

	for _, sev := range []review.Severity{review.SeverityHigh, review.SeverityMedium, review.SeverityLow} {
		var group []review.Issue
		for _, issue := range out.Issues {
			if issue.Severity == sev {
				group = append(group, issue)
			}
		}
		if len(group) == 0 {
			continue
		}

		ew.printf("## %s severity\n\n", strings.ToUpper(string(sev)))
		for _, issue := range group {
			ew.printf("- **%s** (confidence %.0f%%): %s", issue.Kind, issue.Confidence*100, issue.Message)
			if issue.FilePath != "" {
				loc := issue.FilePath
				if issue.LineNumber > 0 {
					loc = fmt.Sprintf("%s:%d", loc, issue.LineNumber)
				}
				ew.printf(" (`%s`)", loc)
			}
			ew.println("")
		}
		ew.println("")
	}

	return ew.err
}
