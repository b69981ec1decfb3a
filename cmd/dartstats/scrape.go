package main

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/spf13/cobra"
)

func newScrapeCmd(c *cli) *cobra.Command {
	var (
		scopeID   string
		eventURL  string
		eventName string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Ingest every match of a DartConnect event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := c.services.Scrape.Scrape(cmd.Context(), usecase.ScrapeInput{
				ActorID:        operatorActor,
				ScopeID:        scopeID,
				EventReference: eventURL,
				EventName:      eventName,
				Progress: func(done, total int) {
					c.logger.Info("scrape progress", "scope_id", scopeID, "done", done, "total", total)
				},
			})
			if summary != nil {
				printRunSummary(c.out, summary)
				raw, marshalErr := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("encode summary: %w", marshalErr)
				}
				fmt.Fprintln(c.out, string(raw))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&scopeID, "scope", "", "scope (user id) the stats belong to")
	cmd.Flags().StringVar(&eventURL, "event-url", "", "DartConnect event URL, e.g. https://tv.dartconnect.com/event/<token>")
	cmd.Flags().StringVar(&eventName, "event-name", "", "label for the stored records (defaults to the event token)")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("event-url")
	return cmd
}
