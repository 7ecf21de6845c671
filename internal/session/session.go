package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/earlysvahn/ollamaq/internal/cli"
	"github.com/earlysvahn/ollamaq/internal/ollama"
	"github.com/earlysvahn/ollamaq/internal/render"
	"github.com/earlysvahn/ollamaq/internal/store"
)

// ErrNoModels ends a run that found nothing installed on the server.
var ErrNoModels = errors.New("no models available")

const separatorWidth = 60

// Backend is the model server a session talks to.
type Backend interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Recorder receives every successful exchange.
type Recorder interface {
	Append(ctx context.Context, ex store.Exchange) error
}

type Config struct {
	Backend  Backend
	Input    LineReader
	Out      io.Writer
	Err      io.Writer
	Logf     func(string)
	Recorder Recorder
	Spinner  bool
	Markdown bool
}

// State is what a session knows about itself. Model is fixed once chosen.
type State struct {
	ID        string
	Model     string
	Exchanges int
}

type runner struct {
	cfg    Config
	out    render.Styles
	diag   render.Styles
	state  State
	models []ollama.ModelInfo
}

// Run drives a session from startup to quit. It returns ErrNoModels when the
// catalog is empty; a user quit, including EOF on input, returns nil.
func Run(ctx context.Context, cfg Config) (State, error) {
	if cfg.Logf == nil {
		cfg.Logf = func(string) {}
	}
	r := &runner{
		cfg:   cfg,
		out:   render.NewStyles(cfg.Out),
		diag:  render.NewStyles(cfg.Err),
		state: State{ID: uuid.NewString()},
	}

	defaultName, err := r.startup(ctx)
	if err != nil {
		return r.state, err
	}

	model, quit, err := r.selectModel(defaultName)
	if err != nil {
		return r.state, err
	}
	if quit {
		r.goodbye()
		return r.state, nil
	}
	r.state.Model = model
	r.cfg.Logf(fmt.Sprintf("model selected: %s", model))

	if err := r.queryLoop(ctx); err != nil {
		return r.state, err
	}
	r.goodbye()
	return r.state, nil
}

func (r *runner) startup(ctx context.Context) (string, error) {
	fmt.Fprintln(r.cfg.Out, r.out.Title.Render("Ollama Interactive Query Tool"))
	fmt.Fprintln(r.cfg.Out, "Initializing... Connecting to Ollama server.")

	models, err := r.cfg.Backend.ListModels(ctx)
	if err != nil {
		r.errorf("fetch models: %v", err)
	}
	if len(models) == 0 {
		r.errorf("No models available. Please pull a model in Ollama first.")
		return "", ErrNoModels
	}
	r.models = models
	r.cfg.Logf(fmt.Sprintf("found %d models", len(models)))

	defaultName := ollama.PickDefault(models)
	render.Catalog(r.cfg.Out, models, defaultName)
	return defaultName, nil
}

func (r *runner) selectModel(defaultName string) (string, bool, error) {
	prompt := fmt.Sprintf("Enter model number (default is %s, press Enter): ", defaultName)
	for {
		fmt.Fprintln(r.cfg.Out)
		line, err := r.cfg.Input.ReadLine(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", true, nil
			}
			return "", false, fmt.Errorf("read input: %w", err)
		}

		name, quit, err := Select(line, r.models, defaultName)
		switch {
		case errors.Is(err, ErrOutOfRange):
			r.warnf("Invalid choice. Please try again.")
		case errors.Is(err, ErrNotANumber):
			r.warnf("Invalid input. Please enter a number.")
		default:
			return name, quit, nil
		}
	}
}

func (r *runner) queryLoop(ctx context.Context) error {
	separator := r.out.Muted.Render(strings.Repeat("-", separatorWidth))
	for {
		fmt.Fprintf(r.cfg.Out, "\n%s\n", separator)
		line, err := r.cfg.Input.ReadLine("Enter your query (type 'q' to quit): ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if isQuit(line) {
			return nil
		}
		if line == "" {
			r.warnf("Empty input. Please enter a valid query.")
			continue
		}

		reply, err := r.generate(ctx, line)
		if err != nil {
			r.errorf("%v", err)
			r.errorf("No response from Ollama.")
			continue
		}
		r.state.Exchanges++
		r.printReply(reply)
		r.record(ctx, line, reply)
	}
}

func (r *runner) generate(ctx context.Context, prompt string) (string, error) {
	call := func() (string, error) {
		return r.cfg.Backend.Generate(ctx, r.state.Model, prompt)
	}
	if !r.cfg.Spinner {
		return call()
	}
	return cli.ExecuteWithSpinner(r.cfg.Err, fmt.Sprintf("Waiting for %s...", r.state.Model), call)
}

func (r *runner) printReply(reply string) {
	if r.cfg.Markdown {
		fmt.Fprint(r.cfg.Out, "\n"+render.Markdown(r.cfg.Out, reply))
		return
	}
	fmt.Fprintf(r.cfg.Out, "\n%s\n", reply)
}

func (r *runner) record(ctx context.Context, prompt, reply string) {
	if r.cfg.Recorder == nil {
		return
	}
	ex := store.Exchange{
		SessionID: r.state.ID,
		Model:     r.state.Model,
		Prompt:    prompt,
		Response:  reply,
	}
	if err := r.cfg.Recorder.Append(ctx, ex); err != nil {
		r.warnf("failed to save exchange: %v", err)
	}
}

func (r *runner) goodbye() {
	fmt.Fprintf(r.cfg.Out, "\nExiting Ollama Query Tool after %d %s. Goodbye!\n", r.state.Exchanges, plural(r.state.Exchanges, "exchange"))
}

func (r *runner) errorf(format string, args ...any) {
	fmt.Fprintf(r.cfg.Err, "%s %s\n", r.diag.Error.Render("[error]"), fmt.Sprintf(format, args...))
}

func (r *runner) warnf(format string, args ...any) {
	fmt.Fprintf(r.cfg.Err, "%s %s\n", r.diag.Warning.Render("[warning]"), fmt.Sprintf(format, args...))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
