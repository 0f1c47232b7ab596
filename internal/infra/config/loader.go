package config

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace marker and configuration file.
const FileName = "xmigraph.yaml"

// LoadConfig reads xmigraph.yaml from the workspace root. On error the
// returned config still holds the defaults, so callers may choose to continue.
func LoadConfig(root string) (domain.Config, error) {
	path := filepath.Join(root, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return ParseConfig(path, b)
}

// ParseConfig decodes raw YAML bytes. path is used for error context only.
func ParseConfig(path string, b []byte) (domain.Config, error) {
	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return MapConfig(path, dto)
}
