package providers

import (
	"context"
	"net/http"
	"os"
)

const defaultLocalEndpoint = "http://localhost:8000/v1/chat/completions"

// Local implements the Invoker interface for a locally reachable
// OpenAI-compatible model server (Ollama, vLLM, LM Studio). No API key is
// required by default.
type Local struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewLocal creates a new local-server provider. The endpoint comes from
// LOCAL_LLM_ENDPOINT, defaulting to localhost:8000.
func NewLocal(model string) (*Local, error) {
	endpoint := os.Getenv("LOCAL_LLM_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultLocalEndpoint
	}
	// Optional key for servers that require one.
	apiKey := os.Getenv("LOCAL_LLM_API_KEY")

	return &Local{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{},
	}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Invoke(ctx context.Context, req ChatRequest) (string, error) {
	body := chatCompletionRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	headers := map[string]string{}
	if l.apiKey != "" {
		headers["Authorization"] = "Bearer " + l.apiKey
	}

	respBody, err := postJSON(ctx, l.client, l.endpoint, headers, body)
	if err != nil {
		return "", err
	}
	return decodeChatCompletion(respBody)
}
