package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/earlysvahn/ollamaq/internal/ollama"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("choice out of range")
)

func isQuit(input string) bool {
	return input == "q" || input == "Q"
}

// Select interprets one line typed at the model prompt. An empty line picks
// defaultName, q quits, and a number picks the 1-based catalog entry.
// Only the number may be padded with spaces.
func Select(input string, models []ollama.ModelInfo, defaultName string) (name string, quit bool, err error) {
	if input == "" {
		return defaultName, false, nil
	}
	if isQuit(input) {
		return "", true, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "", false, ErrNotANumber
	}
	if n < 1 || n > len(models) {
		return "", false, ErrOutOfRange
	}
	return models[n-1].Name, false, nil
}
