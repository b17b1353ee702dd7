// Root command for the routedeck CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/routedeck/routedeck/internal/paths"
	"github.com/routedeck/routedeck/pkg/routedeck"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagListen    string
)

// loadedConfig holds the values read from config.yaml. Set by
// PersistentPreRunE so all subcommands can use them.
var loadedConfig struct {
	dataDir       string
	listenAddr    string
	defaultRegion string
}

var rootCmd = &cobra.Command{
	Use:           "routedeck",
	Short:         "Routedeck is a route table management server",
	Version:       routedeck.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		loadedConfig.dataDir = cfg.GetString(cfgKeyDataDir)
		loadedConfig.listenAddr = cfg.GetString(cfgKeyListenAddr)
		loadedConfig.defaultRegion = cfg.GetString(cfgKeyDefaultRegion)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir, e.g. ~/.config/routedeck)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.routedeck-db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > ROUTEDECK_DATA_DIR env > default
// $(CWD)/.routedeck-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, loadedConfig.dataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > ROUTEDECK_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
