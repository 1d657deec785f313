// Package platform holds the ambient concerns shared by the CLI and the
// interactive server: configuration and logging (SPEC_FULL §4.N).
package platform

import "github.com/kelseyhightower/envconfig"

// Config is the process-wide configuration, overridable via environment
// variables (spec §4.K/§9).
type Config struct {
	Threads  int    `envconfig:"RAYMARCH_THREADS" default:"0"`
	Port     int    `envconfig:"RAYMARCH_PORT" default:"8090"`
	LogLevel string `envconfig:"RAYMARCH_LOG_LEVEL" default:"info"`
}

// LoadConfig reads Config from the environment, applying defaults for
// anything unset.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
