// Package config provides reviewd configuration with a defined load order:
// CLI flags > environment variables > config file > defaults.
//
// The config file is TOML at the platform config dir, e.g.
// ~/.config/reviewd/config.toml. Environment variables use the REVIEWD_
// prefix; provider credentials (OPENAI_API_KEY, ANTHROPIC_API_KEY,
// GEMINI_API_KEY, LOCAL_LLM_ENDPOINT) are read by the provider layer, not
// here.
package config
