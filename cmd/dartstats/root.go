package main

import (
	"fmt"
	"io"
	"time"

	"github.com/riskibarqy/darts-league/internal/app"
	"github.com/riskibarqy/darts-league/internal/config"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/riskibarqy/darts-league/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	operatorActor = "dartstats-cli"
	closeTimeout  = 5 * time.Second
)

// cli carries what every subcommand shares. Services are built lazily so
// --help works without a database.
type cli struct {
	out      io.Writer
	logger   *logging.Logger
	services *app.Services
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "dartstats",
		Short:         "Scrape DartConnect events and inspect league stats",
		Long:          "Operator tool for the darts league: ingest DartConnect match stats, print leaderboards and record event winners.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.out == nil {
				c.out = cmd.OutOrStdout()
			}
			return c.open()
		},
	}

	root.AddCommand(newScrapeCmd(c))
	root.AddCommand(newLeaderboardCmd(c))
	root.AddCommand(newWinnerCmd(c))
	return root
}

func (c *cli) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.logger = logging.NewConsole(cfg.LogLevel).With("storage_driver", cfg.StorageDriver)
	logging.SetDefault(c.logger)

	services, err := app.NewServices(cfg, usecase.TrustedScopeAuthorizer{}, c.logger)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	c.services = services
	return nil
}

func (c *cli) close() {
	if c.services == nil {
		return
	}
	if err := c.services.Close(closeTimeout); err != nil {
		c.logger.Warn("close services", "error", err)
	}
	c.services = nil
	_ = c.logger.Sync()
}
