package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/domain"
)

func relationsCmd(flags *rootFlags) *cobra.Command {
	var from, to bool

	c := &cobra.Command{
		Use:   "relations <model> <entity-id>",
		Short: "List the relationships leaving or reaching an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace, false)
			if err != nil {
				return err
			}
			path, err := resolveModelPath(ws, args[0])
			if err != nil {
				return err
			}
			m, err := ws.loadModel().Execute(cmd.Context(), path)
			if err != nil {
				return err
			}

			id := args[1]
			if _, ok := m.FindEntity(id); !ok {
				return &domain.OpError{Op: "cli.relations", Kind: domain.KindNotFound, Err: fmt.Errorf("entity %q not in model", id)}
			}
			if !from && !to {
				from, to = true, true
			}

			out := cmd.OutOrStdout()
			if from {
				printRelations(out, "outgoing", m.RelationshipsFrom(id))
			}
			if to {
				printRelations(out, "incoming", m.RelationshipsTo(id))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&from, "from", false, "Only relationships whose source is the entity")
	c.Flags().BoolVar(&to, "to", false, "Only relationships whose target is the entity")
	return c
}

func printRelations(w io.Writer, title string, rs []domain.Relationship) {
	th := defaultTheme()
	fmt.Fprintf(w, "%s (%d)\n", th.Title.Render(title), len(rs))
	for _, r := range rs {
		e := r.Edge()
		fmt.Fprintf(w, "  %s  %s  %s -> %s\n", e.ID, e.EntityType, e.SourceID(), e.TargetID())
	}
}
