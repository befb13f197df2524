package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/Dr-Boom/KYT-Demo/internal/mockdata"
)

// Load reads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if _, err := cfg.Generator.Reference(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Generator.Seed == nil {
		seed := mockdata.DefaultSeed
		cfg.Generator.Seed = &seed
	}
	if cfg.Generator.Transactions == 0 {
		cfg.Generator.Transactions = mockdata.DefaultTransactionCount
	}
	if cfg.Generator.Cases == 0 {
		cfg.Generator.Cases = mockdata.DefaultCaseCount
	}
	if cfg.Generator.ChainAwareAddresses == nil {
		chainAware := true
		cfg.Generator.ChainAwareAddresses = &chainAware
	}
	if cfg.Store.AuditCapacity == 0 {
		cfg.Store.AuditCapacity = 1000
	}
}

// Reference parses the configured reference time, falling back to the default anchor.
func (g GeneratorConfig) Reference() (time.Time, error) {
	if g.ReferenceTime == "" {
		return mockdata.DefaultReference, nil
	}
	t, err := time.Parse(time.RFC3339, g.ReferenceTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid generator.reference_time %q: %w", g.ReferenceTime, err)
	}
	return t, nil
}

// Options converts the generator section into generation options.
func (g GeneratorConfig) Options() (mockdata.Options, error) {
	ref, err := g.Reference()
	if err != nil {
		return mockdata.Options{}, err
	}
	seed := mockdata.DefaultSeed
	if g.Seed != nil {
		seed = *g.Seed
	}
	chainAware := true
	if g.ChainAwareAddresses != nil {
		chainAware = *g.ChainAwareAddresses
	}
	return mockdata.Options{
		Seed:                seed,
		Transactions:        g.Transactions,
		Cases:               g.Cases,
		Reference:           ref,
		ChainAwareAddresses: chainAware,
	}, nil
}
