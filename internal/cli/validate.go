package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/usecase"
)

func validateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model>",
		Short: "Load a model and fail if any record is rejected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace, false)
			if err != nil {
				return err
			}
			path, err := resolveModelPath(ws, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sum, err := usecase.NewValidateModel(ws.loadModel()).Execute(cmd.Context(), path)
			var inv *usecase.InvalidModelError
			if errors.As(err, &inv) {
				renderErrors(out, inv.Entries)
				return fmt.Errorf("validation failed: %w", err)
			}
			if err != nil {
				return err
			}

			okLine(out, "OK (%d entities, %d relationships)", sum.EntityCount, sum.RelationshipCount)
			return nil
		},
	}
}
