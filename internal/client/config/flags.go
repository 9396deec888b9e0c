package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs so other components' flags do not clash.
// -b takes an explicit value ("-b true") because FilterArgs pairs a flag
// with the following token.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-k", "-b", "-u", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.IdentityKey, "k", cfg.IdentityKey, "identity provider publishable key")
	backend := fs.String("b", "", "enable backend (true|false)")
	fs.StringVar(&cfg.DevUserID, "u", cfg.DevUserID, "development placeholder user")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "local database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	if *backend != "" {
		cfg.BackendEnabled = parseBool(*backend)
	}
}
