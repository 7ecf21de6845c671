package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/earlysvahn/ollamaq/internal/store"
)

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "List sessions recorded with --save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s store.TranscriptStore) error {
			return listSessions(cmd, s)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print the exchanges of one recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s store.TranscriptStore) error {
			return showSession(cmd, s, args[0])
		})
	},
}

func init() {
	transcriptsCmd.AddCommand(showCmd)
	rootCmd.AddCommand(transcriptsCmd)
}

func withStore(fn func(store.TranscriptStore) error) error {
	s, err := store.Open(rootOpts.DSN())
	if err != nil {
		return fmt.Errorf("storage error: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func listSessions(cmd *cobra.Command, s store.TranscriptStore) error {
	sessions, err := s.ListSessions(ctxOf(cmd))
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No recorded sessions.")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-24s  %-9s  %s\n", "SESSION", "MODEL", "EXCHANGES", "LAST_USED")
	for _, info := range sessions {
		fmt.Fprintf(out, "%-36s  %-24s  %-9d  %s\n", info.ID, info.Model, info.Exchanges, humanize.Time(info.LastUsed))
	}
	return nil
}

func showSession(cmd *cobra.Command, s store.TranscriptStore, id string) error {
	exchanges, err := s.LoadSession(ctxOf(cmd), id)
	if errors.Is(err, store.ErrSessionNotFound) {
		return fmt.Errorf("session '%s' does not exist", id)
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, ex := range exchanges {
		fmt.Fprintf(out, "[%s] [user] %s\n", ex.Time.Format("2006-01-02 15:04"), ex.Prompt)
		fmt.Fprintf(out, "[%s] [%s] %s\n", ex.Time.Format("2006-01-02 15:04"), ex.Model, ex.Response)
	}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
