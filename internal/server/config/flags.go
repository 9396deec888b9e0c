package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP gateway bind address (e.g., ":8080")
//	-s string   store kind: memory, postgres or mongo
//	-d string   PostgreSQL DSN
//	-m string   MongoDB URI
//	-n string   MongoDB database name
//	-r string   Redis URI for change fan-out
//	-k string   identity token HMAC secret
//	-q string   require auth (true|false)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-t int      attachment URL lifetime, minutes
//	-l string   log level
//
// Notes:
//   - os.Args is filtered with flagx.FilterArgs first, so flags meant for
//     other components do not break parsing.
//   - -q takes an explicit value because FilterArgs pairs a flag with the
//     following token.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-w", "-s", "-d", "-m", "-n", "-r", "-k", "-q",
		"-u", "-p", "-b", "-g", "-e", "-t", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP gateway")
	fs.StringVar(&config.StoreKind, "s", config.StoreKind, "store kind (memory|postgres|mongo)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.RedisURI, "r", config.RedisURI, "Redis URI")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "identity token secret key")
	requireAuth := fs.String("q", "", "require auth (true|false)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	attachmentTTL := fs.Int("t", int(config.AttachmentURLTTL.Minutes()), "attachment URL lifetime (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AttachmentURLTTL = time.Duration(*attachmentTTL) * time.Minute

	if *requireAuth != "" {
		v, err := strconv.ParseBool(*requireAuth)
		if err != nil {
			panic(err)
		}
		config.RequireAuth = v
	}
}
