package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL        = "https://api.groq.com/openai/v1"
	groqRequestTimeout = 60 * time.Second
)

// GroqProvider generates text via the Groq API, which speaks the OpenAI
// chat completion protocol.
type GroqProvider struct {
	client *openai.Client
	model  string
}

func NewGroqProvider(apiKey, model string) (*GroqProvider, error) {
	if apiKey == "" {
		return nil, errors.New("groq API key is not set")
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = groqBaseURL
	config.HTTPClient = &http.Client{Timeout: groqRequestTimeout}

	return &GroqProvider{client: openai.NewClientWithConfig(config), model: model}, nil
}

func (p *GroqProvider) Name() string {
	return "groq"
}

func (p *GroqProvider) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("groq returned an empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
