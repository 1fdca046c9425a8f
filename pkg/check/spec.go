package check

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// SpecEntry configures one spec-driven check: which registered check to
// run, with what params, and how a failure is classified.
type SpecEntry struct {
	Type     string         `yaml:"type"`
	Params   map[string]any `yaml:"params"`
	Severity Severity       `yaml:"severity"`
}

// Spec is a per-cleaner declarative check document.
type Spec struct {
	Tests map[string]SpecEntry `yaml:"tests"`
}

// LoadSpec parses a YAML spec file. A missing file is not an error: most
// cleaners have no spec and that returns (nil, nil).
func LoadSpec(path string) (*Spec, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Spec
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing check spec %s", path)
	}
	return &s, nil
}

// LoadSpecFor loads the spec for a cleaner from dir/<name>.yaml.
func LoadSpecFor(dir, name string) (*Spec, error) {
	if dir == "" {
		return nil, nil
	}
	return LoadSpec(filepath.Join(dir, name+".yaml"))
}
