package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/infra/sqlitestore"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

func storeCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "store",
		Short: "Keep loaded models in the workspace database",
	}
	c.AddCommand(
		storeSaveCmd(flags),
		storeListCmd(flags),
		storeShowCmd(flags),
		storeRmCmd(flags),
	)
	return c
}

// withStore opens the workspace database for the duration of fn.
func withStore(flags *rootFlags, fn func(ws *workspaceCtx, st *sqlitestore.Store, uc *usecase.PersistModel) error) error {
	ws, err := loadWorkspace(flags.workspace, true)
	if err != nil {
		return err
	}
	st, err := ws.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ws, st, usecase.NewPersistModel(ws.loadModel(), ws.loader, st))
}

func storeSaveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save <model>",
		Short: "Load a model and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(flags, func(ws *workspaceCtx, _ *sqlitestore.Store, uc *usecase.PersistModel) error {
				path, err := resolveModelPath(ws, args[0])
				if err != nil {
					return err
				}
				id, m, err := uc.Save(cmd.Context(), path)
				if err != nil {
					return err
				}
				okLine(cmd.OutOrStdout(), "stored %q as #%d (%d entities, %d relationships, %d errors)",
					m.Name, id, len(m.Entities()), len(m.Relationships()), m.Errors().Len())
				return nil
			})
		},
	}
}

func storeListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(flags, func(_ *workspaceCtx, _ *sqlitestore.Store, uc *usecase.PersistModel) error {
				models, err := uc.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(models) == 0 {
					fmt.Fprintln(out, "(no stored models)")
					return nil
				}
				for _, m := range models {
					fmt.Fprintf(out, "#%d  %s  %d entities, %d relationships, %d errors  %s\n",
						m.ID, m.Name, m.Entities, m.Relationships, m.Errors, m.StoredAt.Format("2006-01-02 15:04:05Z"))
				}
				return nil
			})
		},
	}
}

func storeShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Rebuild a stored model and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStoreID(args[0])
			if err != nil {
				return err
			}
			return withStore(flags, func(_ *workspaceCtx, _ *sqlitestore.Store, uc *usecase.PersistModel) error {
				m, err := uc.Restore(cmd.Context(), id)
				if err != nil {
					return err
				}
				renderSummary(cmd.OutOrStdout(), fmt.Sprintf("#%d %s", id, m.Name), m.Summary())
				return nil
			})
		},
	}
}

func storeRmCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStoreID(args[0])
			if err != nil {
				return err
			}
			return withStore(flags, func(_ *workspaceCtx, st *sqlitestore.Store, _ *usecase.PersistModel) error {
				if err := st.DeleteModel(cmd.Context(), id); err != nil {
					return err
				}
				okLine(cmd.OutOrStdout(), "deleted #%d", id)
				return nil
			})
		},
	}
}

func parseStoreID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.OpError{Op: "cli.store", Kind: domain.KindInvalidInput, Err: fmt.Errorf("invalid model id %q", s)}
	}
	return id, nil
}
