package qualification

import "context"

type Repository interface {
	// UpsertWinner keeps one winner per (scope, event name).
	UpsertWinner(ctx context.Context, w EventWinner) error
	ListWinners(ctx context.Context, scopeID string) ([]EventWinner, error)
}
