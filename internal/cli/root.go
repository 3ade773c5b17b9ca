package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "champguess",
		Short: "CLI tool for the champion guessing game API",
		Long: `champguess is a CLI tool for interacting with the champion guessing game JSON API.

It can start and play games in a channel, inspect statistics, look up
champion builds and manage per-user preferences.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CHAMPGUESS_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newHintCmd())
	rootCmd.AddCommand(newGiveUpCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newEndCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPrefsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, stdout, stderr).PrintError(err)
		return 1
	}
	return 0
}

// Execute runs the root command
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
