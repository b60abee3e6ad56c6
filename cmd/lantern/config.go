package main

import (
	"fmt"

	"github.com/born-ml/lantern/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s = %s\n", config.KeyLogLevel, cfg.Log.Level)
			fmt.Fprintf(out, "%s = %s\n", config.KeyLogFormat, cfg.Log.Format)
			fmt.Fprintf(out, "%s = %t\n", config.KeyLogFailures, cfg.Log.Failures)
			fmt.Fprintf(out, "%s = %d\n", config.KeyMaxHandles, cfg.Registry.MaxHandles)
			return nil
		},
	}
}
