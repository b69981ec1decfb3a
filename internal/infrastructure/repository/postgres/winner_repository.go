package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	qb "github.com/riskibarqy/darts-league/internal/platform/querybuilder"
)

const eventWinnersTable = "event_winners"

var eventWinnerSelectColumns = qb.Columns(eventWinnerTableModel{})

type WinnerRepository struct {
	db *sqlx.DB
}

func NewWinnerRepository(db *sqlx.DB) *WinnerRepository {
	return &WinnerRepository{db: db}
}

func (r *WinnerRepository) UpsertWinner(ctx context.Context, w qualification.EventWinner) error {
	model := eventWinnerTableModel{
		ScopeID:     w.ScopeID,
		EventName:   w.EventName,
		EventNumber: w.EventNumber,
		PlayerName:  w.PlayerName,
		Qualifying:  w.Qualifying,
		RecordedAt:  w.RecordedAt.UTC(),
	}

	query, args, err := qb.UpsertModel(eventWinnersTable, model, []string{"scope_id", "event_name"}, nil)
	if err != nil {
		return fmt.Errorf("build upsert event_winners query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert event_winners scope=%s event=%s: %w", w.ScopeID, w.EventName, err)
	}
	return nil
}

func (r *WinnerRepository) ListWinners(ctx context.Context, scopeID string) ([]qualification.EventWinner, error) {
	query, args, err := qb.Select(eventWinnerSelectColumns...).
		From(eventWinnersTable).
		Where(qb.Eq{"scope_id": scopeID}).
		OrderBy("event_number", "event_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select event_winners query: %w", err)
	}

	var rows []eventWinnerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select event_winners scope=%s: %w", scopeID, err)
	}

	out := make([]qualification.EventWinner, 0, len(rows))
	for _, row := range rows {
		out = append(out, qualification.EventWinner{
			ScopeID:     row.ScopeID,
			EventName:   row.EventName,
			EventNumber: row.EventNumber,
			PlayerName:  row.PlayerName,
			Qualifying:  row.Qualifying,
			RecordedAt:  row.RecordedAt,
		})
	}
	return out, nil
}
