package main

import (
	"fmt"
	"io"

	"github.com/born-ml/lantern/internal/config"
	"github.com/born-ml/lantern/internal/logging"
	"github.com/born-ml/lantern/lantern"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lantern",
		Short:         "Lantern value boundary tools",
		Version:       lantern.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $"+config.EnvConfigFile+")")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newKindsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newSelftestCmd())
	return cmd
}

// loadConfig resolves settings with --config taking precedence over
// LANTERN_CONFIG.
func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}

// newRuntime builds a runtime from the resolved settings, logging to w.
func newRuntime(w io.Writer) (*lantern.Runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log, w)
	if err != nil {
		return nil, err
	}
	return lantern.New(cfg, log), nil
}
