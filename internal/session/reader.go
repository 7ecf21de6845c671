package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// LineReader reads one line of user input after showing prompt. It returns
// io.EOF when the user closed input or pressed Ctrl+C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ReadlineReader is the terminal LineReader with line editing and history.
type ReadlineReader struct {
	rl *readline.Instance
}

func NewReadlineReader() (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return nil, fmt.Errorf("readline init: %w", err)
	}
	return &ReadlineReader{rl: rl}, nil
}

func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}
