// Package providers implements the LLM provider abstraction: one Invoker
// per backend (OpenAI, Anthropic, Gemini, and a local OpenAI-compatible
// server), selected by name. Per-provider request/response shaping stays
// inside each implementation; callers see raw response text or a classified
// ErrTimeout/ErrProvider failure.
package providers
