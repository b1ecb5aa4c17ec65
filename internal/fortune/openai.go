package fortune

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider on top of the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the given API key and model.
// An empty model falls back to gpt-4.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Model reports the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete sends a system+user chat completion and returns the first choice.
// An answer without choices is reported as empty text, not as an error.
func (p *OpenAIProvider) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels is used as a lightweight liveness probe.
func (p *OpenAIProvider) ListModels(ctx context.Context) error {
	_, err := p.client.ListModels(ctx)
	return err
}
