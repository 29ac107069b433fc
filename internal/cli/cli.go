// Package cli implements the burrow command-line interface.
//
// This package provides commands for retrieving Gopher resources,
// downloading them to disk, managing the response cache, and keeping
// bookmarks. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - get: Retrieve a Gopher resource and print it
//   - download: Save a Gopher resource to a local file
//   - cache: Manage the response cache
//   - bookmark: Manage saved locators
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so the client library can report
// cache and transport activity.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mhollis/burrow/internal/config"
	"github.com/mhollis/burrow/pkg/client"
)

// appName is the application name used for directories and display.
const appName = "burrow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the burrow command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Burrow is a Gopher protocol client",
		Long:         `Burrow retrieves resources from Gopher servers over TCP or TLS, with a two-tier response cache and persistent bookmarks.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), c.Logger)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/burrow/config.toml)")

	root.AddCommand(c.getCommand())
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.bookmarkCommand())

	return root
}

// loadConfig reads the configuration file, honoring --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newClient builds a client from the configuration file. When noCache
// is set the cache TTL is zeroed so every retrieval hits the network.
func (c *CLI) newClient(noCache bool) (*client.Client, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	cc, err := cfg.ClientConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	if noCache {
		cc.CacheTTL = 0
	}

	cl, err := client.New(cc, client.WithLogger(c.Logger))
	if err != nil {
		return nil, config.Config{}, err
	}
	return cl, cfg, nil
}
