package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sehatbeat/internal/flagx"
	"github.com/dmitrijs2005/sehatbeat/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Pointer fields keep absent keys from clobbering defaults; durations
// use timex.Duration so both "15m" and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	StoreKind        *string         `json:"store"`
	DatabaseDSN      *string         `json:"database_dsn"`
	MongoURI         *string         `json:"mongo_uri"`
	MongoDatabase    *string         `json:"mongo_database"`
	RedisURI         *string         `json:"redis_uri"`
	SecretKey        *string         `json:"secret_key"`
	RequireAuth      *bool           `json:"require_auth"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	AttachmentURLTTL *timex.Duration `json:"attachment_url_ttl"`
	SeedCatalog      *bool           `json:"seed_catalog"`
	AllowedOrigins   []string        `json:"allowed_origins"`
	LogLevel         *string         `json:"log_level"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// parseJson loads configuration values from the JSON file named by -c or
// -config. Without the flag nothing is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreKind, c.StoreKind)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.RedisURI, c.RedisURI)
	setString(&config.SecretKey, c.SecretKey)
	setBool(&config.RequireAuth, c.RequireAuth)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.AttachmentURLTTL != nil {
		config.AttachmentURLTTL = c.AttachmentURLTTL.Duration
	}
	setBool(&config.SeedCatalog, c.SeedCatalog)
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
}
