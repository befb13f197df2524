package config

import (
	redisclient "github.com/Dr-Boom/KYT-Demo/internal/infra/redis"
	"github.com/Dr-Boom/KYT-Demo/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Logging   LoggingConfig      `yaml:"logging"`
	Generator GeneratorConfig    `yaml:"generator"`
	Store     StoreConfig        `yaml:"store"`
	Redis     redisclient.Config `yaml:"redis"`
	Database  postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// AllowedOrigins feeds the CORS middleware; empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// GeneratorConfig controls the seeded demo dataset.
type GeneratorConfig struct {
	// Seed nil selects mockdata.DefaultSeed; 0 is a valid seed.
	Seed         *int64 `yaml:"seed"`
	Transactions int    `yaml:"transactions"`
	Cases        int    `yaml:"cases"`
	// ReferenceTime is the RFC3339 "now" generated dates are bounded by.
	ReferenceTime       string `yaml:"reference_time"`
	ChainAwareAddresses *bool  `yaml:"chain_aware_addresses"`
}

// StoreConfig holds state container settings.
type StoreConfig struct {
	DefaultAuthor string `yaml:"default_author"`
	AuditCapacity int    `yaml:"audit_capacity"`
}
