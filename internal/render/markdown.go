package render

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown renders a model reply for w. Styling is only used when w is a
// terminal; rendering failures fall back to the unwrapped text.
func Markdown(w io.Writer, text string) string {
	text = Unwrap(text)

	style := glamour.WithStandardStyle("notty")
	if isTerminal(w) {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(0))
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return rendered
}

// Unwrap joins hard-wrapped prose lines so glamour can reflow them. Fenced
// code, headings, list items, quotes and table rows keep their own lines,
// a line ending in "-" is glued to the next, and blank runs collapse to one.
func Unwrap(text string) string {
	var out []string
	inFence, joinable, blank := false, false, false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			out = append(out, line)
			joinable, blank = false, false
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		line = strings.TrimRight(line, " \t")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			joinable, blank = false, true
			continue
		}
		blank = false

		if joinable && !startsBlock(line) {
			line = strings.TrimLeft(line, " \t")
			prev := out[len(out)-1]
			if strings.HasSuffix(prev, "-") {
				out[len(out)-1] = strings.TrimSuffix(prev, "-") + line
			} else {
				out[len(out)-1] = prev + " " + line
			}
			continue
		}
		out = append(out, line)
		joinable = !strings.HasPrefix(strings.TrimSpace(line), "#")
	}
	return strings.Join(out, "\n")
}

func startsBlock(line string) bool {
	s := strings.TrimSpace(line)
	for _, p := range []string{"- ", "* ", "+ ", "#", ">", "|"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	digits := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	return digits > 0 && strings.HasPrefix(s[digits:], ". ")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
