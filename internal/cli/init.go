package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/infra/fsworkspace"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

func initCmd(flags *rootFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create an xmigraph workspace (xmigraph.yaml, models/, exports/)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			switch {
			case len(args) == 1:
				dir = args[0]
			case flags.workspace != "":
				dir = flags.workspace
			}

			root, err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(dir, force)
			if err != nil {
				return err
			}
			okLine(cmd.OutOrStdout(), "workspace ready at %s", root)
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite template files that already exist")
	return c
}
