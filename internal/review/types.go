package review

import (
	"errors"
	"fmt"
)

// Severity represents the severity level of an issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Action is the suggested follow-up for an issue. All current detectors and
// the LLM prompt emit "review"; "ignore" is reserved in the taxonomy.
type Action string

const (
	ActionReview Action = "review"
	ActionIgnore Action = "ignore"
)

// Issue kinds. The set is open-ended: the LLM may emit any of the first four,
// the rule engine additionally emits pr_size and complexity.
const (
	KindSecurity    = "security"
	KindStyle       = "style"
	KindCorrectness = "correctness"
	KindPerformance = "performance"
	KindPRSize      = "pr_size"
	KindComplexity  = "complexity"
)

var validSeverities = map[Severity]struct{}{
	SeverityLow: {}, SeverityMedium: {}, SeverityHigh: {},
}

var validActions = map[Action]struct{}{
	ActionReview: {}, ActionIgnore: {},
}

// Issue is a single advisory finding.
type Issue struct {
	Kind       string   `json:"kind"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Confidence float64  `json:"confidence"`
	Action     Action   `json:"action"`
	LineNumber int      `json:"line_number,omitempty"`
	FilePath   string   `json:"file_path,omitempty"`
}

// Validate checks that the issue has required fields and allowed enum values.
// LineNumber and FilePath are optional. An issue failing validation must never
// reach a report.
func (i *Issue) Validate() error {
	if i == nil {
		return errors.New("issue is nil")
	}
	if i.Kind == "" {
		return errors.New("kind is required")
	}
	if _, ok := validSeverities[i.Severity]; !ok {
		return fmt.Errorf("invalid severity %q", i.Severity)
	}
	if i.Message == "" {
		return errors.New("message is required")
	}
	if i.Confidence < 0 || i.Confidence > 1 {
		return fmt.Errorf("confidence %g outside [0,1]", i.Confidence)
	}
	if _, ok := validActions[i.Action]; !ok {
		return fmt.Errorf("invalid action %q", i.Action)
	}
	if i.LineNumber < 0 {
		return fmt.Errorf("line number %d must be positive", i.LineNumber)
	}
	return nil
}

// Request is a pull request submitted for review.
type Request struct {
	PRNumber      int      `json:"pr_number"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	FilesChanged  []string `json:"files_changed"`
	Diff          string   `json:"diff"`
	CommitMessage string   `json:"commit_message"`
}

// Summary provides an overview of review results.
type Summary struct {
	TotalIssues       int     `json:"total_issues"`
	HighSeverity      int     `json:"high_severity"`
	MediumSeverity    int     `json:"medium_severity"`
	LowSeverity       int     `json:"low_severity"`
	ReviewTimeSeconds float64 `json:"review_time_seconds"`
	LLMUsed           bool    `json:"llm_used"`
	ModelName         string  `json:"model_name,omitempty"`
}

// Output is the complete result of one review call.
type Output struct {
	PRNumber int               `json:"pr_number"`
	Issues   []Issue           `json:"issues"`
	Summary  Summary           `json:"summary"`
	Metadata map[string]string `json:"metadata"`
}

// ComputeSummary tallies severity counts over issues.
func ComputeSummary(issues []Issue) Summary {
	s := Summary{TotalIssues: len(issues)}
	for _, i := range issues {
		switch i.Severity {
		case SeverityLow:
			s.LowSeverity++
		case SeverityMedium:
			s.MediumSeverity++
		case SeverityHigh:
			s.HighSeverity++
		}
	}
	return s
}
