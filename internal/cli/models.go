package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func modelsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "models",
		Short: "Manage model documents in a workspace",
	}
	c.AddCommand(modelsListCmd(flags))
	return c
}

func modelsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List model documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace, true)
			if err != nil {
				return err
			}

			refs, err := ws.source.ListModels(ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no models found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}
}
