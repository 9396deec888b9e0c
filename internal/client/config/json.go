package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sehatbeat/internal/flagx"
	"github.com/dmitrijs2005/sehatbeat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from the zero value so a partial file only
// overrides what it names.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	IdentityKey         *string         `json:"identity_key"`
	BackendEnabled      *bool           `json:"backend_enabled"`
	DevUserID           *string         `json:"dev_user_id"`
	LocalDBPath         *string         `json:"local_db_path"`
	LocalSecret         *string         `json:"local_secret"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.IdentityKey != nil {
		cfg.IdentityKey = *jc.IdentityKey
	}
	if jc.BackendEnabled != nil {
		cfg.BackendEnabled = *jc.BackendEnabled
	}
	if jc.DevUserID != nil {
		cfg.DevUserID = *jc.DevUserID
	}
	if jc.LocalDBPath != nil {
		cfg.LocalDBPath = *jc.LocalDBPath
	}
	if jc.LocalSecret != nil {
		cfg.LocalSecret = *jc.LocalSecret
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
