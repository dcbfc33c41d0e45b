package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConsoleConfig configures the operator console.
type ConsoleConfig struct {
	BaseURL      string `toml:"base_url"`
	// Token is the admin token or a principal token.
	Token        string `toml:"token"`
	// Principal is only honoured alongside the admin token.
	Principal    string `toml:"principal"`
	SelfNumber   string `toml:"self_number"`
	PollInterval int    `toml:"poll_interval"`
	CacheTTL     int    `toml:"cache_ttl"`
}

func consoleDefaults() ConsoleConfig {
	return ConsoleConfig{
		BaseURL:      "http://localhost:8080",
		SelfNumber:   "7709446589",
		PollInterval: 5,
		CacheTTL:     5,
	}
}

// LoadConsole reads the console TOML file (if it exists) and applies
// environment overrides. Env vars always win.
//
// File resolution: PARTNERHUB_CONSOLE_CONFIG → ~/.config/partnerhub/console.toml → skip.
func LoadConsole() (*ConsoleConfig, error) {
	cfg := consoleDefaults()

	if path := consoleConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, err
			}
		}
	}

	applyConsoleEnv(&cfg)
	cfg.validate()
	return &cfg, nil
}

func consoleConfigPath() string {
	if p := os.Getenv("PARTNERHUB_CONSOLE_CONFIG"); p != "" {
		return expandHome(p)
	}
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "partnerhub", "console.toml")
}

func applyConsoleEnv(cfg *ConsoleConfig) {
	if v := os.Getenv("PARTNERHUB_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PARTNERHUB_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("PARTNERHUB_PRINCIPAL"); v != "" {
		cfg.Principal = v
	}
	if v := os.Getenv("SELF_NUMBER"); v != "" {
		cfg.SelfNumber = v
	}
	if v := os.Getenv("PARTNERHUB_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = n
		}
	}
}

func (c *ConsoleConfig) validate() {
	if c.PollInterval < 1 {
		c.PollInterval = 5
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
