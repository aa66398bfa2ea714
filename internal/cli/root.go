// Package cli implements the nonsteam command tree.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lobinuxsoft/nonsteam/internal/config"
	"github.com/lobinuxsoft/nonsteam/pkg/steam"
)

// rootOptions carries flags shared by every subcommand.
type rootOptions struct {
	steamDir string
	verbose  bool
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the nonsteam command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nonsteam",
		Short:         "Add non-Steam games to the Steam library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !opts.verbose {
				log.SetOutput(io.Discard)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.steamDir, "steam-dir", "", "Steam installation directory (overrides detection)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newUsersCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// resolvePaths locates the Steam installation: the flag wins, then the
// configured directory, then platform detection (which honors the
// environment override).
func resolvePaths(opts *rootOptions, cfg *config.Manager) (*steam.Paths, error) {
	if opts.steamDir != "" {
		return steam.NewPathsAt(opts.steamDir)
	}
	if cfg != nil {
		if dir := cfg.GetSteamDir(); dir != "" {
			return steam.NewPathsAt(dir)
		}
	}
	return steam.NewPaths()
}
