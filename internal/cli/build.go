package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "build <champion>",
		Short: "Show recommended builds for a champion",
		Long: `Show recommended runes, items, skill order and summoner spells for a champion.

The champion may be given by name, alias or catalog ID. Pass --role to
show a single lane.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/champions/" + url.PathEscape(args[0]) + "/build"
			if role != "" {
				path += "?" + url.Values{"role": {role}}.Encode()
			}

			var result ChampionBuild

			if err := client.Get(path, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role: top, jungle, mid, adc, support")

	return cmd
}
