// Package review implements the core review pipeline: deterministic
// rule-based checks, optional LLM analysis with strict output validation,
// and the orchestrator that merges both into a single advisory report.
//
// The pipeline is advisory only. It never approves, blocks, or modifies a
// change, and ReviewPR never fails for a well-formed request: every LLM
// failure is absorbed and reported through Summary.LLMUsed.
package review
