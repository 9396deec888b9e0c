package config

import "time"

// Config holds runtime settings for the SehatBeat client.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	IdentityKey         string
	BackendEnabled      bool
	DevUserID           string
	LocalDBPath         string
	LocalSecret         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.IdentityKey = ""
	c.BackendEnabled = false
	c.DevUserID = ""
	c.LocalDBPath = "sehatbeat.db"
	c.LocalSecret = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, JSON (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Settings freezes the configuration.
func (c *Config) Settings() Settings {
	return Settings{
		backendEnabled: c.BackendEnabled,
		identityKey:    c.IdentityKey,
		devUserID:      c.DevUserID,
	}
}
