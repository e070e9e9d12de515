package reconstruct

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"pdfreflow/column"
	"pdfreflow/grouping"
	"pdfreflow/layout"
	"pdfreflow/media"
	"pdfreflow/structure"
)

// Config aggregates every stage's tunables, the §6 table in one YAML
// document.
type Config struct {
	Layout    layout.Config    `yaml:"layout"`
	Column    column.Config    `yaml:"column"`
	Media     media.Config     `yaml:"media"`
	Grouping  grouping.Config  `yaml:"grouping"`
	Structure structure.Config `yaml:"structure"`

	// MapperExportPath, if set, is where the reference mapper's SQLite
	// database is serialized after Run completes, for a packaging stage
	// running in a later process.
	MapperExportPath string `yaml:"mapper_export_path,omitempty"`
}

// DefaultConfig returns every stage's specification-named defaults.
func DefaultConfig() Config {
	return Config{
		Layout:    layout.DefaultConfig(),
		Column:    column.DefaultConfig(),
		Media:     media.DefaultConfig(),
		Grouping:  grouping.DefaultConfig(),
		Structure: structure.DefaultConfig(),
	}
}

var validate = validator.New()

// LoadConfig reads and validates a YAML configuration file, falling back to
// DefaultConfig field-by-field for anything the file omits.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reconstruct: read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("reconstruct: parse config %q: %w", path, err)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("reconstruct: invalid config: %w", err)
	}
	return &cfg, nil
}
