package scrapejob

import "context"

type Repository interface {
	Create(ctx context.Context, job Job) error
	// Update applies fn to the stored job under the repository lock.
	Update(ctx context.Context, id string, fn func(*Job)) (Job, error)
	Get(ctx context.Context, id string) (Job, bool, error)
}
