package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/darts-league/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const maxTracedQueryLength = 512

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dsn, err := postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dsnValue(dsn, "dbname"); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// postgresDSN converts DB_URL into the key/value form lib/pq parses. With
// pooler mode on, parameters are sent in binary so unnamed statements skip
// the prepare round trip a transaction pooler cannot keep.
func postgresDSN(raw string, poolerMode bool) (string, error) {
	dsn := strings.TrimSpace(raw)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DB_URL: %w", err)
		}
		dsn = converted
	}

	if poolerMode && dsnValue(dsn, "binary_parameters") == "" {
		dsn = strings.TrimSpace(dsn + " binary_parameters=yes")
	}
	return dsn, nil
}

func dsnValue(dsn, key string) string {
	prefix := key + "="
	for _, token := range strings.Fields(dsn) {
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		return strings.Trim(strings.TrimPrefix(token, prefix), `"'`)
	}
	return ""
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
