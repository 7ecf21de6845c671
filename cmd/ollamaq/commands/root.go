package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/earlysvahn/ollamaq/internal/cli"
	"github.com/earlysvahn/ollamaq/internal/config"
	"github.com/earlysvahn/ollamaq/internal/ollama"
	"github.com/earlysvahn/ollamaq/internal/session"
	"github.com/earlysvahn/ollamaq/internal/store"
)

var rootOpts config.Options

var rootCmd = &cobra.Command{
	Use:   "ollamaq",
	Short: "Interactive prompt for a local Ollama server",
	Long: `ollamaq lists the models installed on the local Ollama server
(` + ollama.BaseURL + `), lets you pick one and then sends each line you
type as a prompt, printing the generated text.

At the model prompt press Enter for the default (the first llama2 model,
else the first listed), type a number, or q to quit. At the query prompt
type q to quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rootOpts.Validate(); err != nil {
			return err
		}
		return runInteractive(cmd, rootOpts)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&rootOpts.Quiet, "quiet", false, "suppress non-error logs")
	flags.StringVar(&rootOpts.DB, "db", "", "transcript store: SQLite path or postgres:// DSN (default $XDG_CONFIG_HOME/ollamaq/ollamaq.db)")

	local := rootCmd.Flags()
	local.BoolVar(&rootOpts.Markdown, "markdown", false, "render responses as markdown")
	local.BoolVar(&rootOpts.NoSpinner, "no-spinner", false, "do not show a spinner while waiting")
	local.BoolVar(&rootOpts.Save, "save", false, "record every exchange to the transcript store")
}

// Execute runs the command tree and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, session.ErrNoModels):
		// already reported by the session
		return 1
	default:
		fmt.Fprintln(os.Stderr, "[error]", err)
		return 1
	}
}

func logger(w io.Writer, quiet bool) func(string) {
	return func(msg string) {
		if quiet {
			return
		}
		fmt.Fprintf(w, "[ollamaq] %s\n", msg)
	}
}

type lineInput interface {
	session.LineReader
	Close() error
}

// newInput uses line editing on a terminal and a plain reader that echoes
// prompts when stdin is piped.
func newInput(cmd *cobra.Command) (lineInput, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return session.NewPlainReader(cmd.InOrStdin(), cmd.OutOrStdout()), nil
	}
	rl, err := session.NewReadlineReader()
	if err != nil {
		return nil, err
	}
	return rl, nil
}

func runInteractive(cmd *cobra.Command, opts config.Options) error {
	logf := logger(cmd.ErrOrStderr(), opts.Quiet)

	input, err := newInput(cmd)
	if err != nil {
		return err
	}
	defer input.Close()

	cfg := session.Config{
		Backend:  ollama.New(),
		Input:    input,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Logf:     logf,
		Spinner:  !opts.NoSpinner && cli.IsTerminal(cmd.ErrOrStderr()),
		Markdown: opts.Markdown,
	}

	if opts.Save {
		transcripts, err := store.Open(opts.DSN())
		if err != nil {
			return fmt.Errorf("storage error: %w", err)
		}
		defer transcripts.Close()
		cfg.Recorder = transcripts
		logf(fmt.Sprintf("recording transcripts to %s", opts.DSN()))
	}

	state, err := session.Run(ctxOf(cmd), cfg)
	if state.Exchanges > 0 && opts.Save {
		logf(fmt.Sprintf("session %s saved", state.ID))
	}
	return err
}
