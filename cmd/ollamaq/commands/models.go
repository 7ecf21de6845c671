package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/earlysvahn/ollamaq/internal/ollama"
	"github.com/earlysvahn/ollamaq/internal/render"
	"github.com/earlysvahn/ollamaq/internal/session"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List installed models and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listModels(cmd, ollama.New())
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func listModels(cmd *cobra.Command, backend session.Backend) error {
	models, err := backend.ListModels(ctxOf(cmd))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[error] fetch models: %v\n", err)
	}
	if len(models) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "[error] No models available. Please pull a model in Ollama first.")
		return session.ErrNoModels
	}
	render.Catalog(cmd.OutOrStdout(), models, ollama.PickDefault(models))
	return nil
}
