package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

func loadCmd(flags *rootFlags) *cobra.Command {
	var all bool
	var showErrors bool
	var format string

	c := &cobra.Command{
		Use:   "load [model...]",
		Short: "Load one or more models and print what they hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("give at least one model or use --all")
			}

			ws, err := loadWorkspace(flags.workspace, all)
			if err != nil {
				return err
			}

			var paths []string
			if all {
				refs, err := ws.source.ListModels(ws.root)
				if err != nil {
					return err
				}
				for _, r := range refs {
					paths = append(paths, r.Path)
				}
			}
			for _, a := range args {
				p, err := resolveModelPath(ws, a)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			}

			results, err := usecase.NewLoadBatch(ws.loadModel(), ws.cfg.Load.Workers).Execute(cmd.Context(), paths)
			if err != nil {
				return err
			}
			return printBatch(cmd.OutOrStdout(), ws.root, results, format, showErrors)
		},
	}

	c.Flags().BoolVar(&all, "all", false, "Load every model under the models dir")
	c.Flags().BoolVar(&showErrors, "errors", false, "List rejected records")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type batchLine struct {
	Path    string                 `json:"path"`
	Error   string                 `json:"error,omitempty"`
	Summary *domain.Summary        `json:"summary,omitempty"`
	Errors  []domain.ErrorLogEntry `json:"errors,omitempty"`
}

func printBatch(w io.Writer, root string, results []usecase.BatchResult, format string, showErrors bool) error {
	failed := 0

	if format == "json" {
		lines := make([]batchLine, 0, len(results))
		for _, r := range results {
			l := batchLine{Path: r.Path}
			if r.Err != nil {
				failed++
				l.Error = r.Err.Error()
			} else {
				s := r.Model.Summary()
				l.Summary = &s
				if showErrors {
					l.Errors = r.Model.Errors().Entries()
				}
			}
			lines = append(lines, l)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lines); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			title := r.Path
			if rel, err := filepath.Rel(root, r.Path); err == nil {
				title = rel
			}
			if r.Err != nil {
				failed++
				fmt.Fprintf(w, "%s %s: %v\n", defaultTheme().Fail.Render("✗"), title, r.Err)
				continue
			}
			if r.Model.Name != "" {
				title = r.Model.Name + " (" + title + ")"
			}
			renderSummary(w, title, r.Model.Summary())
			if showErrors {
				renderErrors(w, r.Model.Errors().Entries())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d model(s) could not be read", failed)
	}
	return nil
}
