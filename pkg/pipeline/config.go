package pipeline

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the orchestrator's file-level settings, loaded from
// custodian.toml when present.
type Config struct {
	// OutputDir is the root for persisted datasets; each cleaner writes
	// under its own subdirectory.
	OutputDir string `toml:"output_dir"`
	// StagingDir is where path-based downloads land.
	StagingDir string `toml:"staging_dir"`
	// Format is the persisted output format: csv, jsonl or parquet.
	Format string `toml:"format"`
	// SpecDir holds per-cleaner check spec documents (<name>.yaml).
	SpecDir string `toml:"spec_dir"`
	// Workers caps batch-run concurrency.
	Workers int `toml:"workers"`
}

const defaultWorkers = 4

func DefaultConfig() Config {
	return Config{
		OutputDir:  "data/cleaned",
		StagingDir: "data/raw",
		Format:     "csv",
		SpecDir:    "specs",
		Workers:    defaultWorkers,
	}
}

// LoadConfig reads a TOML config file, filling unset fields with defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Format == "" {
		cfg.Format = "csv"
	}
	return cfg, nil
}
