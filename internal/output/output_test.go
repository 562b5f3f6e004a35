package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/reviewd/internal/review"
)

func sampleOutput() *review.Output {
	issues := []review.Issue{
		{
			Kind:       review.KindSecurity,
			Severity:   review.SeverityHigh,
			Message:    "Use of eval() detected",
			Confidence: 1.0,
			Action:     review.ActionReview,
			LineNumber: 12,
			FilePath:   "auth.py",
		},
		{
			Kind:       review.KindStyle,
			Severity:   review.SeverityLow,
			Message:    "Star import detected",
			Confidence: 0.9,
			Action:     review.ActionReview,
		},
	}
	s := review.ComputeSummary(issues)
	s.ReviewTimeSeconds = 0.05
	return &review.Output{
		PRNumber: 42,
		Issues:   issues,
		Summary:  s,
		Metadata: map[string]string{"prompt_version": review.PromptVersion},
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown", "md"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("xml"); err == nil {
		t.Error("GetWriter(xml) should fail")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleOutput()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"CODE REVIEW SUMMARY - PR #42",
		"Total Issues: 2",
		"High Severity: 1",
		"Review Time: 0.05s",
		"LLM Used: No (rule-based only)",
		"[HIGH] security",
		"File: auth.py",
		"Line: 12",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestTextWriter_NoIssues(t *testing.T) {
	out := &review.Output{PRNumber: 1, Issues: []review.Issue{}, Summary: review.ComputeSummary(nil)}

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, out); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "No issues found!") {
		t.Error("text output should celebrate a clean review")
	}
}

func TestTextWriter_LLMUsed(t *testing.T) {
	out := sampleOutput()
	out.Summary.LLMUsed = true
	out.Summary.ModelName = "gpt-4"

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, out); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "LLM Used: Yes") {
		t.Error("missing LLM usage line")
	}
	if !strings.Contains(buf.String(), "Model: gpt-4") {
		t.Error("missing model name line")
	}
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleOutput()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded review.Output
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.PRNumber != 42 {
		t.Errorf("PRNumber = %d, want 42", decoded.PRNumber)
	}
	if len(decoded.Issues) != 2 {
		t.Errorf("got %d issues, want 2", len(decoded.Issues))
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleOutput()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"# Code Review - PR #42",
		"**2 issues** (1 high, 0 medium, 1 low)",
		"## HIGH severity",
		"## LOW severity",
		"(`auth.py:12`)",
		"confidence 100%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestWriteReport_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "review_results.json")

	if err := WriteReport(sampleOutput(), "json", path); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var decoded review.Output
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
}

func TestWriteReport_UnsupportedFormat(t *testing.T) {
	if err := WriteReport(sampleOutput(), "xml", ""); err == nil {
		t.Error("unsupported format should fail")
	}
}
