package ollama

import (
	"context"
	"fmt"
)

// Generate sends a single non-streaming prompt to model and returns the
// generated text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := EncodeGenerate(model, prompt)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	resp, err := c.post(ctx, "/api/generate", "application/json", body)
	if err != nil {
		return "", err
	}
	return DecodeGenerate(resp)
}
