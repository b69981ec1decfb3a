package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/darts-league/internal/domain/scrapejob"
)

// ScrapeJobRepository keeps jobs for the life of the process.
type ScrapeJobRepository struct {
	mu    sync.RWMutex
	items map[string]scrapejob.Job
}

func NewScrapeJobRepository() *ScrapeJobRepository {
	return &ScrapeJobRepository{items: make(map[string]scrapejob.Job)}
}

func (r *ScrapeJobRepository) Create(_ context.Context, job scrapejob.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[job.ID]; exists {
		return fmt.Errorf("scrape job %s already exists", job.ID)
	}
	r.items[job.ID] = job
	return nil
}

func (r *ScrapeJobRepository) Update(_ context.Context, id string, fn func(*scrapejob.Job)) (scrapejob.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.items[id]
	if !ok {
		return scrapejob.Job{}, fmt.Errorf("scrape job %s not found", id)
	}
	fn(&job)
	r.items[id] = job
	return job, nil
}

func (r *ScrapeJobRepository) Get(_ context.Context, id string) (scrapejob.Job, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.items[id]
	return job, ok, nil
}
