package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the recipebook CLI.
type Config struct {
	// ServerURL is the base URL of the recipebook HTTP API.
	ServerURL string `validate:"required,url,startswith=http"`
	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration `validate:"gt=0"`
	// OnlineCheckInterval is how often the server health probe runs.
	OnlineCheckInterval time.Duration `validate:"gt=0"`
	// LocalDBPath is the SQLite file that keeps the session tokens.
	LocalDBPath string `validate:"required"`
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LocalDBPath = "recipebook.db"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
