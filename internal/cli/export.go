package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

func exportCmd(flags *rootFlags) *cobra.Command {
	var mode string
	var format string
	var name string
	var list bool

	c := &cobra.Command{
		Use:   "export [model]",
		Short: "Load a model and write it back out, error log included",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			ws, err := loadWorkspace(flags.workspace, list)
			if err != nil {
				return err
			}

			if list {
				entries, err := ws.exports.List()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "(no exports found)")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "- %s  %s/%s  %d entities, %d relationships, %d errors\n",
						e.ID, e.Mode, e.Format, e.Entities, e.Relationships, e.Errors)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("model is required")
			}

			opts, err := exportOptions(ws.cfg, mode, format)
			if err != nil {
				return err
			}
			opts.Name = name

			path, err := resolveModelPath(ws, args[0])
			if err != nil {
				return err
			}

			id, m, err := usecase.NewExportModel(ws.loadModel(), ws.exports).Execute(cmd.Context(), path, opts)
			if err != nil {
				return err
			}

			file := filepath.Join(ws.exports.Dir(), id+opts.Format.Ext())
			okLine(out, "exported %s (%d errors logged)", file, m.Errors().Len())
			return nil
		},
	}

	c.Flags().StringVar(&mode, "mode", "", "compact|verbose (default from xmigraph.yaml)")
	c.Flags().StringVar(&format, "format", "", "json|msgpack (default from xmigraph.yaml)")
	c.Flags().StringVar(&name, "name", "", "Name used for the export file (default: model Name)")
	c.Flags().BoolVar(&list, "list", false, "List previous exports from the index")
	return c
}

// exportOptions applies flag overrides on top of the workspace config.
func exportOptions(cfg domain.Config, mode, format string) (domain.ExportOptions, error) {
	if mode == "" {
		mode = cfg.Export.Mode
	}
	m, err := codec.ParseMode(mode)
	if err != nil {
		return domain.ExportOptions{}, err
	}

	f := cfg.Export.Format
	if format != "" {
		if f, err = domain.ParseExportFormat(format); err != nil {
			return domain.ExportOptions{}, err
		}
	}
	return domain.ExportOptions{Mode: m, Format: f}, nil
}
