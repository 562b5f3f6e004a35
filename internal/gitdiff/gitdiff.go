package gitdiff

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/dshills/reviewd/internal/review"
)

// Staged builds a review request from the diff of index vs HEAD.
func Staged() (review.Request, error) {
	diff, err := gitOutput("diff", "--cached")
	if err != nil {
		return review.Request{}, fmt.Errorf("git diff --cached: %w", err)
	}
	return buildRequest(diff, "staged changes")
}

// Unstaged builds a review request from the diff of working tree vs index.
func Unstaged() (review.Request, error) {
	diff, err := gitOutput("diff")
	if err != nil {
		return review.Request{}, fmt.Errorf("git diff: %w", err)
	}
	return buildRequest(diff, "unstaged changes")
}

func buildRequest(diff, title string) (review.Request, error) {
	branch, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	author, err := gitOutput("config", "user.name")
	if err != nil {
		author = ""
	}

	req := review.Request{
		Title:        fmt.Sprintf("Local review: %s", title),
		Description:  strings.TrimSpace(fmt.Sprintf("Branch: %s", strings.TrimSpace(branch))),
		Author:       strings.TrimSpace(author),
		FilesChanged: extractFiles(diff),
		Diff:         diff,
	}
	return req, nil
}

// extractFiles parses changed file paths from the +++ header lines.
func extractFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "+++ ") {
			continue
		}
		path := strings.TrimPrefix(line, "+++ ")
		path = strings.TrimPrefix(path, "b/")
		if path == "/dev/null" || path == "" || seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}
	return files
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
