package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/blockwright"
	"github.com/fwojciec/blockwright/inject"
)

// Config is read from the environment.
type Config struct {
	DBPath            string  `env:"BLOCKWRIGHT_DB"`
	HostPath          string  `env:"BLOCKWRIGHT_HOST"`
	GovernanceVersion string  `env:"BLOCKWRIGHT_GOVERNANCE_VERSION" envDefault:"1.0"`
	PublishThreshold  float64 `env:"BLOCKWRIGHT_PUBLISH_THRESHOLD"  envDefault:"0.90"`
}

// LoadConfig parses the configuration from environ, or from the process
// environment when environ is nil.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.GovernanceVersion == "" {
		cfg.GovernanceVersion = inject.DefaultGovernanceVersion
	}
	if cfg.PublishThreshold < 0 || cfg.PublishThreshold > 1 {
		return Config{}, blockwright.Errorf(blockwright.EINVALID, "publish threshold %v out of range [0,1]", cfg.PublishThreshold)
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "blockwright.db"
	}
	dir := filepath.Join(home, ".blockwright")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "blockwright.db")
}
