package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	qb "github.com/riskibarqy/darts-league/internal/platform/querybuilder"
)

const playerMatchStatsTable = "player_match_stats"

var (
	playerMatchStatsKey  = []string{"scope_id", "event_name", "match_id", "player_name"}
	playerMatchStatsKeep = []string{"created_at"}

	playerMatchStatsSelectColumns = qb.Columns(playerMatchStatsTableModel{})
)

type StatRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db, now: time.Now}
}

func (r *StatRepository) Upsert(ctx context.Context, record matchstats.PlayerStatRecord) error {
	model := newPlayerMatchStatsTableModel(record, r.now().UTC())
	query, args, err := qb.UpsertModel(playerMatchStatsTable, model, playerMatchStatsKey, playerMatchStatsKeep)
	if err != nil {
		return fmt.Errorf("build upsert player_match_stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf(
			"upsert player_match_stats scope=%s event=%s match=%s player=%s: %w",
			record.ScopeID, record.EventName, record.MatchID, record.PlayerName, err,
		)
	}
	return nil
}

func (r *StatRepository) ListByScope(ctx context.Context, scopeID string, filter matchstats.Filter) ([]matchstats.PlayerStatRecord, error) {
	where := qb.Eq{"scope_id": scopeID}
	if filter.EventName != "" {
		where["event_name"] = filter.EventName
	}
	if filter.PlayerName != "" {
		where["player_name"] = filter.PlayerName
	}

	query, args, err := qb.Select(playerMatchStatsSelectColumns...).
		From(playerMatchStatsTable).
		Where(where).
		OrderBy("event_name", "match_id", "player_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select player_match_stats query: %w", err)
	}

	var rows []playerMatchStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player_match_stats scope=%s: %w", scopeID, err)
	}

	out := make([]matchstats.PlayerStatRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
