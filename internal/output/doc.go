// Package output renders review results in text, JSON, and markdown formats.
package output
