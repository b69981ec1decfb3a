package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

type StatUpserter struct {
	repo matchstats.Repository
}

func NewStatUpserter(repo matchstats.Repository) *StatUpserter {
	return &StatUpserter{repo: repo}
}

// UpsertAll writes every record even when some fail. It returns the
// records that were stored and a joined ErrPersistence for the rest.
func (u *StatUpserter) UpsertAll(ctx context.Context, records []matchstats.PlayerStatRecord) ([]matchstats.PlayerStatRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatUpserter.UpsertAll")
	defer span.End()

	stored := make([]matchstats.PlayerStatRecord, 0, len(records))
	var errs []error
	for _, record := range records {
		if err := u.repo.Upsert(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("%w: player=%s: %v", ErrPersistence, record.PlayerName, err))
			continue
		}
		stored = append(stored, record)
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		return stored, err
	}
	return stored, nil
}
