// Reviewd is an advisory code review service and CLI for pull request diffs.
//
// It combines deterministic rule-based checks with optional LLM analysis and
// reports a prioritized list of issues. Reviews are advisory only: findings
// never fail the process, block a merge, or modify a change.
//
// Usage:
//
//	reviewd review --pr-file pr.json           # review a PR request file
//	reviewd review --pr-file pr.json --no-llm  # rule-based checks only
//	reviewd review --staged                    # review local staged changes
//	reviewd serve                              # run the REST API server
package main

import (
	"os"

	"github.com/dshills/reviewd/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
