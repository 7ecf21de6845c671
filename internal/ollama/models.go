package ollama

import (
	"context"
	"strings"
)

// DefaultPrefix marks the model family offered as the no-input choice.
const DefaultPrefix = "llama2"

// ModelInfo is one installed model as reported by /api/tags.
type ModelInfo struct {
	Name string
	Size uint64
}

// ListModels fetches the installed models in server order.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	body, err := c.get(ctx, "/api/tags")
	if err != nil {
		return nil, err
	}
	return DecodeTags(body)
}

// PickDefault returns the first model whose name starts with DefaultPrefix,
// else the first model, else "".
func PickDefault(models []ModelInfo) string {
	for _, m := range models {
		if strings.HasPrefix(m.Name, DefaultPrefix) {
			return m.Name
		}
	}
	if len(models) > 0 {
		return models[0].Name
	}
	return ""
}
