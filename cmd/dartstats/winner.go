package main

import (
	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/spf13/cobra"
)

func newWinnerCmd(c *cli) *cobra.Command {
	var in usecase.SetWinnerInput

	cmd := &cobra.Command{
		Use:   "winner",
		Short: "Record the winner of an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.ActorID = operatorActor
			winner, err := c.services.Qualification.SetWinner(cmd.Context(), in)
			if err != nil {
				return err
			}
			printWinner(c.out, winner)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ScopeID, "scope", "", "scope (user id) of the event")
	cmd.Flags().StringVar(&in.EventName, "event-name", "", "event name as stored by scrape")
	cmd.Flags().IntVar(&in.EventNumber, "event-number", 0, "position of the event in the series")
	cmd.Flags().StringVar(&in.PlayerName, "player", "", "winning player name")
	for _, name := range []string{"scope", "event-name", "event-number", "player"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
