package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lobinuxsoft/nonsteam/pkg/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "nonsteam", version.Full())
		},
	}
}
