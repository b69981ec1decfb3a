package main

import (
	"fmt"

	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/spf13/cobra"
)

func newLeaderboardCmd(c *cli) *cobra.Command {
	var q usecase.LeaderboardQuery

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the ranked player leaderboard of a scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qualified, err := c.services.Qualification.QualificationLookup(cmd.Context(), q.ScopeID)
			if err != nil {
				return err
			}
			q.Qualified = qualified

			board, err := c.services.Aggregation.Leaderboard(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(board) == 0 {
				fmt.Fprintf(c.out, "No stats stored for scope %q yet. Run 'dartstats scrape' first.\n", q.ScopeID)
				return nil
			}
			printLeaderboard(c.out, board)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.ScopeID, "scope", "", "scope (user id) to rank")
	cmd.Flags().StringVar(&q.EventName, "event", "", "restrict to one event name")
	cmd.Flags().StringVar(&q.SortBy, "sort-by", "", "weighted_average|total_180s|total_140_plus|total_100_plus|highest_finish|legs_played")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "show at most this many players (0 = all)")
	_ = cmd.MarkFlagRequired("scope")
	return cmd
}
