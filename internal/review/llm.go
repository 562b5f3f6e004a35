package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/reviewd/internal/providers"
	"github.com/dshills/reviewd/internal/redact"
)

// ErrInvalidOutput means the LLM response was not parseable as a JSON array
// of issues.
var ErrInvalidOutput = errors.New("invalid llm output")

// Generation parameters for review calls. Low temperature keeps the output
// consistent between runs on the same diff.
const (
	llmTemperature = 0.1
	llmMaxTokens   = 2000
)

// callModel invokes the configured provider and parses the response into
// validated issues. Failure classes: providers.ErrTimeout,
// providers.ErrProvider, ErrInvalidOutput.
func (r *Reviewer) callModel(ctx context.Context, req Request, provider, model string) ([]Issue, error) {
	inv, err := r.newInvoker(provider, model)
	if err != nil {
		return nil, err
	}

	diff := req.Diff
	if r.cfg.RedactSecrets {
		diff = redact.Secrets(diff)
	}

	chatReq := providers.ChatRequest{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   BuildTaskPrompt(req.Title, req.Description, diff),
		Temperature:  llmTemperature,
		MaxTokens:    llmMaxTokens,
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	content, err := inv.Invoke(callCtx, chatReq)
	if err != nil {
		return nil, err
	}

	return parseIssues(content, r.cfg.ConfidenceThreshold, r.logger)
}

// parseIssues converts raw model output into validated issues. The output is
// untrusted: elements that fail schema validation are dropped and logged
// rather than aborting the parse, and zero surviving elements is a valid,
// empty result. Issues below the confidence threshold are dropped. Order of
// survivors matches the array order.
func parseIssues(content string, threshold float64, logger *slog.Logger) ([]Issue, error) {
	content = stripFences(strings.TrimSpace(content))

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(content), &elements); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %v", ErrInvalidOutput, err)
	}

	issues := make([]Issue, 0, len(elements))
	for idx, raw := range elements {
		var issue Issue
		if err := json.Unmarshal(raw, &issue); err != nil {
			logger.Warn("skipping malformed issue element", "index", idx, "error", err)
			continue
		}
		if err := issue.Validate(); err != nil {
			logger.Warn("skipping invalid issue element", "index", idx, "error", err)
			continue
		}
		if issue.Confidence < threshold {
			logger.Debug("dropping low-confidence issue",
				"index", idx, "confidence", issue.Confidence, "threshold", threshold)
			continue
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// stripFences removes a surrounding markdown code fence and its optional
// language tag.
func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
