package chat

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoAPIKey signals that the chat feature is not configured.
var ErrNoAPIKey = errors.New("chat: no API key configured")

// Client wraps the Gemini API for portfolio chat.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a chat client. Returns ErrNoAPIKey when apiKey is
// empty; callers treat that as "chat disabled", not a startup failure.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Ask sends a visitor question primed with the profile context and
// returns the model's reply.
func (c *Client) Ask(ctx context.Context, question, priming string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if priming != "" {
		cfg.SystemInstruction = genai.NewContentFromText(priming, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(question), cfg)
	if err != nil {
		return "", fmt.Errorf("generating chat reply: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty chat reply")
	}
	return text, nil
}
