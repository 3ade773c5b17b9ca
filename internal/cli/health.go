package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

// newOutput builds an Output bound to the command's writers
func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
