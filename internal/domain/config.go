package domain

import (
	"fmt"
	"strings"
)

// Config represents the xmigraph workspace configuration loaded from xmigraph.yaml.
type Config struct {
	Export ExportConfig
	Paths  PathsConfig
	Load   LoadConfig
}

type ExportConfig struct {
	Mode   string // compact | verbose
	Format ExportFormat
	Index  bool
}

type PathsConfig struct {
	ModelsDir  string
	ExportsDir string
	Database   string
}

type LoadConfig struct {
	Workers int
}

// ExportFormat is the on-disk encoding of an exported payload.
type ExportFormat string

const (
	FormatJSON    ExportFormat = "json"
	FormatMsgpack ExportFormat = "msgpack"
)

// Ext is the file extension used for the format.
func (f ExportFormat) Ext() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return ".json"
}

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack, "msgp", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q (want json|msgpack)", ErrInvalidConfig, s)
	}
}

// DefaultConfig provides sane defaults if xmigraph.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{
			Mode:   "compact",
			Format: FormatJSON,
			Index:  true,
		},
		Paths: PathsConfig{
			ModelsDir:  "models",
			ExportsDir: "exports",
			Database:   ".xmigraph/models.db",
		},
		Load: LoadConfig{Workers: 4},
	}
}
