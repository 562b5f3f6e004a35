package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements the Invoker interface for OpenAI's chat completions API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable is not set", ErrProvider)
	}
	baseURL := os.Getenv("REVIEWD_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Invoke(ctx context.Context, req ChatRequest) (string, error) {
	body := chatCompletionRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	respBody, err := postJSON(ctx, o.client, o.baseURL, map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}, body)
	if err != nil {
		return "", err
	}
	return decodeChatCompletion(respBody)
}
