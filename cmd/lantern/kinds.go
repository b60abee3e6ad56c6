package main

import (
	"fmt"

	"github.com/born-ml/lantern/lantern"
	"github.com/spf13/cobra"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the value kinds a handle can refer to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range lantern.Kinds() {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", int(k), k)
			}
		},
	}
}
