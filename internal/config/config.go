// Package config loads client settings for a ServerQuery endpoint from TOML.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPort is the well-known ServerQuery listener port.
const DefaultPort = 10011

// DefaultTimeout bounds every read on the query connection.
const DefaultTimeout = 5 * time.Second

// Config describes one ServerQuery endpoint plus the optional session
// bootstrap (credentials and virtual server selection).
type Config struct {
	Host          string
	Port          int
	Timeout       time.Duration
	LoginName     string
	LoginPassword string
	ServerID      int
}

type fileConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Timeout       string `toml:"timeout"`
	LoginName     string `toml:"login_name"`
	LoginPassword string `toml:"login_password"`
	ServerID      int    `toml:"server_id"`
}

// Default returns a config for host with the protocol's stock port and
// timeout.
func Default(host string) Config {
	return Config{Host: host, Port: DefaultPort, Timeout: DefaultTimeout}
}

// Load reads and validates a TOML config file.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load query config: %w", err)
	}

	cfg := Default(strings.TrimSpace(raw.Host))
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	cfg.LoginName = strings.TrimSpace(raw.LoginName)
	cfg.LoginPassword = raw.LoginPassword
	cfg.ServerID = raw.ServerID

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the endpoint fields a connection attempt needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("query config missing host")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("query config port out of range: %d", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("query config timeout must be positive")
	}
	if c.LoginPassword != "" && c.LoginName == "" {
		return fmt.Errorf("query config login_password set without login_name")
	}
	return nil
}

// Addr joins host and port for dialing.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
