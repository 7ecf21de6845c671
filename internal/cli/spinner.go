package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// spinnerModel shows a spinner until the wrapped call reports back.
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

type doneMsg struct{}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// ExecuteWithSpinner runs executeFn while a spinner is drawn on out. When out
// is not a terminal the call runs without one.
func ExecuteWithSpinner[T any](out io.Writer, message string, executeFn func() (T, error)) (T, error) {
	if !IsTerminal(out) {
		return executeFn()
	}

	var (
		result  T
		execErr error
	)
	p := tea.NewProgram(newSpinnerModel(message), spinnerOptions(out)...)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		result, execErr = executeFn()
		p.Send(doneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		// spinner failed to start; the call still completes
		<-finished
		return result, execErr
	}
	<-finished
	return result, execErr
}

// spinnerOptions leaves stdin and signals alone: input belongs to the line
// editor and Ctrl+C must still end the process while a request hangs.
func spinnerOptions(out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
