package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/drlldiego/diagrammer-web-sub004/pkg/layout"
)

// loadTuning decodes a TOML layout tuning file on top of the default
// configuration, so a file only needs the fields it overrides.
func loadTuning(path string) (*layout.Config, error) {
	cfg := layout.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	return &cfg, nil
}
