package config

// YAMLConfig mirrors the on-disk layout of xmigraph.yaml.
type YAMLConfig struct {
	Xmigraph YAMLXmigraph `yaml:"xmigraph"`
}

type YAMLXmigraph struct {
	Export YAMLExport `yaml:"export"`
	Paths  YAMLPaths  `yaml:"paths"`
	Load   YAMLLoad   `yaml:"load"`
}

type YAMLExport struct {
	Mode   string `yaml:"mode"`
	Format string `yaml:"format"`
	Index  *bool  `yaml:"index"`
}

type YAMLPaths struct {
	ModelsDir  string `yaml:"models_dir"`
	ExportsDir string `yaml:"exports_dir"`
	Database   string `yaml:"database"`
}

type YAMLLoad struct {
	Workers *int `yaml:"workers"`
}
