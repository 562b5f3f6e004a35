// Package gitdiff builds review requests from the local git repository, so
// the CLI can review staged or unstaged changes without a PR request file.
package gitdiff
