// Package redact removes secret-looking values from diff text before it is
// sent to an external LLM provider.
package redact
