package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/infra/logger"
)

func Execute(ctx context.Context) {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	workspace string
	debug     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:           "xmigraph",
		Short:         "Load, validate and export XMI structural models",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logRoot := flags.workspace
			if logRoot == "" {
				if root, _, err := resolveWorkspaceRoot(""); err == nil {
					logRoot = root
				} else if wd, err := os.Getwd(); err == nil {
					logRoot = wd
				}
			}
			logRoot, _ = filepath.Abs(logRoot)

			// Logging is best effort: a read-only workspace must not block a command.
			c, err := logger.Setup(logger.Config{Root: logRoot, Debug: flags.debug})
			if err == nil {
				cleanup = c
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .xmigraph/logs/xmigraph.log")

	cmd.AddCommand(
		initCmd(flags),
		loadCmd(flags),
		validateCmd(flags),
		exportCmd(flags),
		modelsCmd(flags),
		typesCmd(),
		unitsCmd(),
		queryCmd(flags),
		relationsCmd(flags),
		storeCmd(flags),
		watchCmd(flags),
		versionCmd(),
	)
	return cmd
}
