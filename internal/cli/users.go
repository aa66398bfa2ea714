package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lobinuxsoft/nonsteam/pkg/steam"
)

func newUsersCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List Steam accounts found on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths(opts, loadConfig())
			if err != nil {
				return err
			}

			users, err := steam.ListUsers(paths)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no Steam accounts found under", paths.UserDataDir())
				return nil
			}

			recent, _ := steam.MostRecentUser(paths)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tNAME\tSHORTCUTS\t")
			for _, u := range users {
				marker := ""
				if u.ID == recent.ID {
					marker = " (most recent)"
				}
				shortcuts := "no"
				if paths.HasShortcuts(u.ID) {
					shortcuts = "yes"
				}
				fmt.Fprintf(w, "%s\t%s%s\t%s\t\n", u.ID, u.PersonaName, marker, shortcuts)
			}
			return w.Flush()
		},
	}
}
