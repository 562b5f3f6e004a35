package review

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/dshills/reviewd/internal/providers"
)

// Config holds the tunable constants of the review pipeline. Passing them in
// explicitly (instead of package-level globals) lets tests override them
// deterministically.
type Config struct {
	// SizeThreshold is the changed-line count above which the size rule fires.
	SizeThreshold int
	// ConfidenceThreshold is the minimum confidence an LLM-sourced issue
	// must meet to be retained.
	ConfidenceThreshold float64
	// Timeout bounds a single LLM call.
	Timeout time.Duration
	// RedactSecrets redacts secrets from the diff before it is embedded in
	// the LLM prompt. The rule engine always sees the raw diff.
	RedactSecrets bool
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SizeThreshold:       500,
		ConfidenceThreshold: 0.7,
		Timeout:             30 * time.Second,
		RedactSecrets:       true,
	}
}

// Options selects how a single review call runs.
type Options struct {
	UseLLM   bool
	Provider string
	Model    string
}

// Reviewer orchestrates rule-based checks and optional LLM analysis. The
// clock and the provider factory are injectable for tests.
type Reviewer struct {
	rules      *RuleEngine
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
	newInvoker func(provider, model string) (providers.Invoker, error)
}

// New creates a Reviewer. A nil logger falls back to slog.Default.
func New(cfg Config, logger *slog.Logger) *Reviewer {
	def := DefaultConfig()
	if cfg.SizeThreshold <= 0 {
		cfg.SizeThreshold = def.SizeThreshold
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{
		rules:      NewRuleEngine(RuleConfig{SizeThreshold: cfg.SizeThreshold}),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		newInvoker: providers.New,
	}
}

// ReviewPR reviews a pull request. Rule-based checks always run; LLM
// analysis is optional and degrades gracefully: every LLM failure is
// absorbed here, logged at warning level, and reported through
// Summary.LLMUsed. ReviewPR never fails for a well-formed request.
func (r *Reviewer) ReviewPR(ctx context.Context, req Request, opts Options) Output {
	start := r.now()

	ruleIssues := r.rules.Run(req.Diff)

	var llmIssues []Issue
	llmUsed := false
	modelName := ""

	if opts.UseLLM {
		issues, err := r.callModel(ctx, req, opts.Provider, opts.Model)
		switch {
		case err == nil:
			llmIssues = issues
			llmUsed = true
			modelName = opts.Model
			r.logger.Info("llm analysis completed",
				"provider", opts.Provider, "model", opts.Model, "issues", len(issues))
		case errors.Is(err, providers.ErrTimeout):
			r.logger.Warn("llm timeout, continuing with rule-based checks only",
				"provider", opts.Provider, "error", err)
		case errors.Is(err, ErrInvalidOutput):
			r.logger.Warn("llm returned invalid output, continuing with rule-based checks only",
				"provider", opts.Provider, "error", err)
		default:
			r.logger.Warn("llm provider error, continuing with rule-based checks only",
				"provider", opts.Provider, "error", err)
		}
	}

	allIssues := append(ruleIssues, llmIssues...)

	summary := ComputeSummary(allIssues)
	summary.ReviewTimeSeconds = math.Round(r.now().Sub(start).Seconds()*100) / 100
	summary.LLMUsed = llmUsed
	summary.ModelName = modelName

	metadata := map[string]string{"prompt_version": PromptVersion}
	if llmUsed {
		metadata["llm_provider"] = opts.Provider
	}

	return Output{
		PRNumber: req.PRNumber,
		Issues:   allIssues,
		Summary:  summary,
		Metadata: metadata,
	}
}
