package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDialectsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List configured report dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := env.Dialects.GetProfiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range profiles {
				marker := " "
				if p.Name == env.Config.DefaultDialect {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, p)
			}
			return nil
		},
	}
}
