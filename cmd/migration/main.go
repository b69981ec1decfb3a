package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/darts-league/internal/config"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	logger := logging.NewConsole(logging.LevelInfo)
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *logging.Logger) *cobra.Command {
	if logger == nil {
		logger = logging.Default()
	}
	var migrationsDir string

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Apply darts-league schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR, then ./db/migrations)")

	open := func() (*migrate.Migrate, string, error) {
		return openMigrator(migrationsDir)
	}

	root.AddCommand(
		newUpCmd(logger, open),
		newDownCmd(logger, open),
		newVersionCmd(open),
		newForceCmd(logger, open),
		newGotoCmd(logger, open),
	)
	return root
}

type migratorOpener func() (*migrate.Migrate, string, error)

func openMigrator(dirFlag string) (*migrate.Migrate, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if cfg.DBURL == "" {
		return nil, "", errors.New("DB_URL is required")
	}

	dir, err := resolveMigrationsDir(dirFlag)
	if err != nil {
		return nil, "", fmt.Errorf("resolve migrations dir: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, migrationDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, sourceURL, nil
}

// migrationDBURL applies the same pooler mode as the API connection.
func migrationDBURL(raw string, poolerMode bool) string {
	if !poolerMode {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("binary_parameters") == "" {
		query.Set("binary_parameters", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
