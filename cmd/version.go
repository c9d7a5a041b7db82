package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpc-tools/moddrift/system"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of this moddrift build.",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "moddrift %s\n", system.Version)
		},
	}
}
