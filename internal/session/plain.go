package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PlainReader reads lines from a pipe or file. readline stays silent when
// stdin is not a terminal, so this reader writes the prompts itself.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

func (r *PlainReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (r *PlainReader) Close() error { return nil }
