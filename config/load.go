package config

import (
	"time"

	"github.com/fox-one/pkg/config"
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("LEVER")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaults(cfg)
	return cfg.Validate()
}

func defaults(cfg *Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.Sentinel.Batch <= 0 {
		cfg.Sentinel.Batch = 100
	}

	if cfg.Oracle.FreshWindow <= 0 {
		cfg.Oracle.FreshWindow = time.Hour
	}
}
