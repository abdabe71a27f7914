package config

import (
	"lever/service/oracle"
	"lever/service/pool"
	"lever/service/redeemer"
	"lever/worker/sentinel"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

type (
	// Config engine configuration
	Config struct {
		App      App             `json:"app"`
		DB       db.Config       `json:"db"`
		Oracle   oracle.Config   `json:"oracle"`
		Pool     pool.Config     `json:"pool"`
		Redeemer redeemer.Config `json:"redeemer"`
		Sentinel sentinel.Config `json:"sentinel"`
	}

	// App app config
	App struct {
		// Location time zone driving cron workers
		Location string `json:"location"`
	}
)

// Validate validate config
func (c *Config) Validate() error {
	_, err := govalidator.ValidateStruct(c)
	return err
}
