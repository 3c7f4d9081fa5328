package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Orders  []orderSchema `toml:"orders"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported manifest schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type orderSchema struct {
	RunID       string `toml:"run_id"`
	LagSet      string `toml:"lag_set"`
	Order       int    `toml:"order"`
	Schedule    string `toml:"schedule"`
	Seed        string `toml:"seed"`
	Attempt     int    `toml:"attempt"`
	Path        string `toml:"path"`
	DebugPath   string `toml:"debug_path,omitempty"`
	TotalTrials int    `toml:"total_trials"`
	CreatedAt   string `toml:"created_at"`
}
