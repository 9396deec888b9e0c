// Package config loads runtime configuration for the SehatBeat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: an optional .env file loaded with godotenv, then the
//     SEHATBEAT_* variables (see parseEnv).
//  3. Optional JSON file selected with -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-k string   publishable key of the identity provider
//	-b bool     enable the backend ("true" or "false")
//	-u string   development placeholder user (external id)
//	-d string   path of the local SQLite database
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "identity_key": "",
//	  "backend_enabled": false,
//	  "dev_user_id": "",
//	  "local_db_path": "sehatbeat.db",
//	  "local_secret": "",
//	  "log_level": "info"
//	}
//
// The loaded values are frozen into a Settings value; nothing reads the
// configuration through globals after startup.
package config
