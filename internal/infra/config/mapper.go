package config

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/domain"
)

// MapConfig applies the parsed document on top of domain.DefaultConfig.
func MapConfig(path string, yc YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	x := yc.Xmigraph

	if m := strings.TrimSpace(x.Export.Mode); m != "" {
		mode, err := codec.ParseMode(m)
		if err != nil {
			return cfg, invalidField(path, "xmigraph.export.mode", err.Error())
		}
		cfg.Export.Mode = mode.String()
	}
	if f := strings.TrimSpace(x.Export.Format); f != "" {
		format, err := domain.ParseExportFormat(f)
		if err != nil {
			return cfg, invalidField(path, "xmigraph.export.format", fmt.Sprintf("unknown format %q", f))
		}
		cfg.Export.Format = format
	}
	if x.Export.Index != nil {
		cfg.Export.Index = *x.Export.Index
	}

	if x.Paths.ModelsDir != "" {
		cfg.Paths.ModelsDir = x.Paths.ModelsDir
	}
	if x.Paths.ExportsDir != "" {
		cfg.Paths.ExportsDir = x.Paths.ExportsDir
	}
	if x.Paths.Database != "" {
		cfg.Paths.Database = x.Paths.Database
	}

	if x.Load.Workers != nil {
		if *x.Load.Workers < 0 {
			return cfg, invalidField(path, "xmigraph.load.workers", "must be >= 0")
		}
		cfg.Load.Workers = *x.Load.Workers
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
