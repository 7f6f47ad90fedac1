package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNoProviders is returned by Generate when the client was built without
// any usable provider, before any network call is attempted.
var ErrNoProviders = errors.New("no LLM providers are configured")

// Client tries a fixed sequence of providers in order and returns the first
// successful generation. All providers failing is a single error naming each
// provider's reason.
type Client struct {
	providers []Provider
}

func NewClient(providers ...Provider) *Client {
	return &Client{providers: providers}
}

// Available reports whether at least one provider is configured.
func (c *Client) Available() bool {
	return len(c.providers) > 0
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}

	var failures []string
	for _, provider := range c.providers {
		text, err := provider.Generate(ctx, prompt)
		if err != nil {
			slog.Warn("LLM provider failed, trying next", "provider", provider.Name(), "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", provider.Name(), err))
			continue
		}

		slog.Debug("LLM generation succeeded", "provider", provider.Name(), "response_length", len(text))
		return text, nil
	}

	return "", fmt.Errorf("all LLM providers failed: %s", strings.Join(failures, "; "))
}
