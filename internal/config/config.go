// Package config loads the node's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	LogLevel string       `toml:"log_level"`
	Node     NodeConfig   `toml:"node"`
	Beacon   BeaconConfig `toml:"beacon"`
	Radio    RadioConfig  `toml:"radio"`
	Status   StatusConfig `toml:"status"`
}

type NodeConfig struct {
	// IdentityFile is the TOML state file holding the persisted callsign.
	IdentityFile string `toml:"identity_file"`
}

type BeaconConfig struct {
	AverageSecs      int    `toml:"average_secs"`
	StartupDelaySecs int    `toml:"startup_delay_secs"`
	Message          string `toml:"message"`
}

type RadioConfig struct {
	Listen    string `toml:"listen"`
	Broadcast string `toml:"broadcast"`
}

type StatusConfig struct {
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

// Default returns the configuration a node runs with when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Node:     NodeConfig{IdentityFile: "identity.toml"},
		Beacon: BeaconConfig{
			AverageSecs:      600,
			StartupDelaySecs: 10,
			Message:          "73",
		},
		Radio: RadioConfig{
			Listen:    ":8573",
			Broadcast: "255.255.255.255:8573",
		},
		Status: StatusConfig{Addr: ":9073"},
	}
}

// Load reads path, fills gaps with defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Node.IdentityFile == "" {
		return fmt.Errorf("%w: node.identity_file must be set", ErrInvalidConfig)
	}
	if c.Beacon.AverageSecs <= 0 {
		return fmt.Errorf("%w: beacon.average_secs must be positive", ErrInvalidConfig)
	}
	if c.Beacon.StartupDelaySecs < 0 {
		return fmt.Errorf("%w: beacon.startup_delay_secs must not be negative", ErrInvalidConfig)
	}
	if c.Radio.Listen == "" || c.Radio.Broadcast == "" {
		return fmt.Errorf("%w: radio.listen and radio.broadcast must be set", ErrInvalidConfig)
	}
	if c.Status.Addr == "" {
		return fmt.Errorf("%w: status.addr must be set", ErrInvalidConfig)
	}
	return nil
}

func (c BeaconConfig) Average() time.Duration {
	return time.Duration(c.AverageSecs) * time.Second
}

func (c BeaconConfig) StartupDelay() time.Duration {
	return time.Duration(c.StartupDelaySecs) * time.Second
}
