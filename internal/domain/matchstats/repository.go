package matchstats

import "context"

type Repository interface {
	// Upsert overwrites every field of the record stored under r.Key, or
	// creates it.
	Upsert(ctx context.Context, r PlayerStatRecord) error
	ListByScope(ctx context.Context, scopeID string, filter Filter) ([]PlayerStatRecord, error)
}
