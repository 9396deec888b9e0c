package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerAddr     = "SEHATBEAT_SERVER_ADDR"
	EnvOnlineInterval = "SEHATBEAT_ONLINE_CHECK_INTERVAL"
	EnvIdentityKey    = "SEHATBEAT_IDENTITY_KEY"
	EnvEnableBackend  = "SEHATBEAT_ENABLE_BACKEND"
	EnvDevUserID      = "SEHATBEAT_DEV_USER_ID"
	EnvLocalDBPath    = "SEHATBEAT_LOCAL_DB"
	EnvLocalSecret    = "SEHATBEAT_LOCAL_SECRET"
	EnvLogLevel       = "SEHATBEAT_LOG_LEVEL"
)

// envFiles are loaded, if present, before variables are read. Existing
// process variables are never overwritten.
var envFiles = []string{".env"}

// parseEnv overlays cfg with SEHATBEAT_* variables. Only the literal string
// "true" enables the backend, matching how the web front-end reads its
// environment. A malformed interval panics like the other config stages.
func parseEnv(cfg *Config) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvServerAddr); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(EnvOnlineInterval); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if v, ok := os.LookupEnv(EnvIdentityKey); ok {
		cfg.IdentityKey = v
	}
	if v, ok := os.LookupEnv(EnvEnableBackend); ok {
		cfg.BackendEnabled = v == "true"
	}
	if v, ok := os.LookupEnv(EnvDevUserID); ok {
		cfg.DevUserID = v
	}
	if v, ok := os.LookupEnv(EnvLocalDBPath); ok && v != "" {
		cfg.LocalDBPath = v
	}
	if v, ok := os.LookupEnv(EnvLocalSecret); ok {
		cfg.LocalSecret = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		panic(err)
	}
	return b
}
