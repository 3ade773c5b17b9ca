package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "User preference commands",
	}

	cmd.AddCommand(newPrefsGetCmd())
	cmd.AddCommand(newPrefsSetCmd())
	cmd.AddCommand(newPrefsStatsCmd())
	cmd.AddCommand(newPrefsUsersCmd())
	cmd.AddCommand(newPrefsExportCmd())
	cmd.AddCommand(newPrefsImportCmd())

	return cmd
}

func newPrefsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user>",
		Short: "Show a user's preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Preference

			if err := client.Get(userPath(args[0]), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var (
		language   string
		difficulty string
		autoHints  bool
	)

	cmd := &cobra.Command{
		Use:   "set <user>",
		Short: "Update a user's preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("language") {
				req["language"] = language
			}
			if cmd.Flags().Changed("difficulty") {
				req["difficulty"] = difficulty
			}
			if cmd.Flags().Changed("auto-hints") {
				req["auto_hints"] = autoHints
			}
			if len(req) == 0 {
				return errors.New("nothing to update: pass --language, --difficulty or --auto-hints")
			}

			var result Preference

			if err := client.Patch(userPath(args[0]), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Language: es, en, mx")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, normal, hard, expert")
	cmd.Flags().BoolVar(&autoHints, "auto-hints", false, "Reveal a hint automatically after each miss")

	return cmd
}

func newPrefsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show preference cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PreferenceStats

			if err := client.Get("/api/v1/preferences/stats", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPrefsUsersCmd() *cobra.Command {
	var (
		language   string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List cached users with a given language or difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if language != "" {
				query.Set("language", language)
			}
			if difficulty != "" {
				query.Set("difficulty", difficulty)
			}

			var result UserList

			if err := client.Get("/api/v1/preferences/users?"+query.Encode(), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Language: es, en, mx")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, normal, hard, expert")

	return cmd
}

func newPrefsExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all cached preferences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var snapshot json.RawMessage

			if err := client.Get("/api/v1/preferences/export", &snapshot); err != nil {
				return err
			}

			if file == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(snapshot))
				return nil
			}

			if err := os.WriteFile(file, snapshot, 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Exported preferences to %s", file))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the snapshot to a file instead of stdout")

	return cmd
}

func newPrefsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import preferences from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			if !json.Valid(data) {
				return fmt.Errorf("%s is not valid JSON", args[0])
			}

			var result ImportReport

			if err := client.Post("/api/v1/preferences/import", json.RawMessage(data), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
