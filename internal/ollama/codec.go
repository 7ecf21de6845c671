package ollama

import (
	"bytes"
	"encoding/json"
	"errors"
)

// FallbackResponse is printed when a generate reply has no "response" field.
const FallbackResponse = "No response returned."

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// EncodeGenerate serializes a non-streaming generate request body.
func EncodeGenerate(model, prompt string) ([]byte, error) {
	return json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
}

// DecodeTags parses a /api/tags body. Entries without a string "name" or a
// non-negative integer "size" are skipped. A body that is valid JSON but not
// shaped like a tags response yields an empty catalog.
func DecodeTags(body []byte) ([]ModelInfo, error) {
	top, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	models := []ModelInfo{}
	var entries []json.RawMessage
	if err := json.Unmarshal(top["models"], &entries); err != nil {
		return models, nil
	}
	for _, raw := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		var m ModelInfo
		if !field(fields, "name", &m.Name) || !field(fields, "size", &m.Size) {
			continue
		}
		models = append(models, m)
	}
	return models, nil
}

// DecodeGenerate returns the "response" field of a /api/generate body, or
// FallbackResponse when the field is missing or not a string.
func DecodeGenerate(body []byte) (string, error) {
	top, err := decodeObject(body)
	if err != nil {
		return "", err
	}
	var text string
	if !field(top, "response", &text) {
		return FallbackResponse, nil
	}
	return text, nil
}

// decodeObject only fails on malformed JSON. Well-formed JSON of another
// shape (array, string, null) decodes to an empty object.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, &ParseError{Err: err}
	}
	return top, nil
}

func field(fields map[string]json.RawMessage, name string, dst any) bool {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
