package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/smallserver/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "smallserver",
	Short:   "Static file server",
	Long: `smallserver serves a directory of static files over HTTP with
caching headers, byte ranges and gzip/deflate compression.

Missing files are answered with a 404 page; a root without an index file
is answered with a built-in welcome page. Both pages can be replaced with
files on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringArray("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringArray("config", nil, "config file path, repeatable (default: ./smallserver.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error (env: SMALLSERVER_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
