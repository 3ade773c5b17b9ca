package cli

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "start <channel>",
		Short: "Start a new game in the channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				user = cfg.User
			}
			if user == "" {
				return errors.New("--user is required (env: CHAMPGUESS_USER)")
			}

			req := map[string]string{"user_id": user}
			var result Session

			if err := client.Post(channelPath(args[0], ""), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User starting the game (env: CHAMPGUESS_USER)")

	return cmd
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <channel> <champion...>",
		Short: "Guess the champion",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": strings.Join(args[1:], " ")}
			var result GuessResult

			if err := client.Post(channelPath(args[0], "/guess"), req, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint <channel>",
		Short: "Reveal the next hint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HintResult

			if err := client.Post(channelPath(args[0], "/hint"), nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newGiveUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "giveup <channel>",
		Short: "Give up and reveal the champion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GiveUpResult

			if err := client.Post(channelPath(args[0], "/giveup"), nil, &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var withStats bool

	cmd := &cobra.Command{
		Use:   "status <channel>",
		Short: "Show the game in the channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var session Session

			if err := client.Get(channelPath(args[0], ""), &session); err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(session)

			if withStats {
				var stats SessionStats
				if err := client.Get(channelPath(args[0], "/stats"), &stats); err != nil {
					return err
				}
				out.Print(stats)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withStats, "stats", false, "Also show attempt, hint and duration statistics")

	return cmd
}

func newEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <channel>",
		Short: "Discard the game in the channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(channelPath(args[0], "")); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage("Game ended")
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics across all channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GlobalStats

			if err := client.Get("/api/v1/stats", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSuggestCmd() *cobra.Command {
	var (
		locale     string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "suggest <partial>",
		Short: "List champion names containing the input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("q", args[0])
			if locale != "" {
				query.Set("locale", locale)
			}
			if maxResults > 0 {
				query.Set("max", strconv.Itoa(maxResults))
			}

			var result Suggestions

			if err := client.Get("/api/v1/champions/suggestions?"+query.Encode(), &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Catalog locale or language code (es, en, mx)")
	cmd.Flags().IntVar(&maxResults, "max", 0, "Maximum number of names")

	return cmd
}
