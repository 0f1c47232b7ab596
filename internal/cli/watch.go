package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/infra/logger"
	"github.com/aalvaropc/xmigraph/internal/usecase"
)

const watchDebounce = 200 * time.Millisecond

func watchCmd(flags *rootFlags) *cobra.Command {
	var showErrors bool

	c := &cobra.Command{
		Use:   "watch <model>",
		Short: "Reload a model and print its summary every time the file changes",
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
			return watchModel(cmd.Context(), cmd.OutOrStdout(), ws.loadModel(), path, showErrors)
		},
	}

	c.Flags().BoolVar(&showErrors, "errors", false, "List rejected records after each reload")
	return c
}

// watchModel loads path once, then again after each burst of changes,
// until ctx is done. The parent directory is watched so that editors
// which replace the file on save are picked up.
func watchModel(ctx context.Context, w io.Writer, load *usecase.LoadModel, path string, showErrors bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	reload := func() {
		m, err := load.Execute(ctx, abs)
		if err != nil {
			fmt.Fprintf(w, "%s %v\n", defaultTheme().Fail.Render("✗"), err)
			return
		}
		renderSummary(w, fmt.Sprintf("%s  %s", filepath.Base(abs), time.Now().Format("15:04:05")), m.Summary())
		if showErrors {
			renderErrors(w, m.Errors().Entries())
		}
	}
	reload()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.L().Debug("watch.event", "path", ev.Name, "op", ev.Op.String())
			debounce = time.After(watchDebounce)

		case <-debounce:
			debounce = nil
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn("watch.error", "err", err)
		}
	}
}
