package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk shape of a solve configuration, grounded on
// Hirogava-Go-NN-Learn/pkg/config/config.go's LoadConfig: a plain struct
// with yaml tags, read with os.ReadFile and yaml.Unmarshal, turned into
// runtime Options via ToOptions.
type Profile struct {
	Width   int   `yaml:"width"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
	Debug   bool  `yaml:"debug"`
}

// LoadProfile reads a YAML solve profile from path.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, fmt.Errorf("config: LoadProfile: empty path")
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("config: LoadProfile: read file: %w", err)
	}
	if err := yaml.Unmarshal(bs, &p); err != nil {
		return p, fmt.Errorf("config: LoadProfile: yaml unmarshal: %w", err)
	}
	return p, nil
}

// ToOptions converts a loaded Profile into functional Options, seeding the
// random source deterministically from p.Seed.
func (p Profile) ToOptions() []Option {
	opts := []Option{
		WithWidth(Width(p.Width)),
		WithWorkers(p.Workers),
		WithDebugAssertions(p.Debug),
	}
	if p.Seed != 0 {
		opts = append(opts, WithSeed(p.Seed))
	}
	return opts
}
