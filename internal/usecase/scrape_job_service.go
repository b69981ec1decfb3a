package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/scrapejob"
	"github.com/riskibarqy/darts-league/internal/platform/id"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
)

type eventScraper interface {
	Scrape(ctx context.Context, in ScrapeInput) (*matchstats.RunSummary, error)
}

type ScrapeJobConfig struct {
	Workers int
}

// ScrapeJobService runs scrapes in the background on a bounded worker pool
// and tracks their progress.
type ScrapeJobService struct {
	scraper    eventScraper
	authorizer ScopeAuthorizer
	jobs       scrapejob.Repository
	ids        id.Generator
	pool       *ants.Pool
	logger     *logging.Logger
	now        func() time.Time
}

func NewScrapeJobService(
	scraper eventScraper,
	authorizer ScopeAuthorizer,
	jobs scrapejob.Repository,
	ids id.Generator,
	cfg ScrapeJobConfig,
	logger *logging.Logger,
) (*ScrapeJobService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewTimeOrderedGenerator()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create scrape worker pool: %w", err)
	}

	return &ScrapeJobService{
		scraper:    scraper,
		authorizer: authorizer,
		jobs:       jobs,
		ids:        ids,
		pool:       pool,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Close waits up to timeout for running jobs, then releases the pool.
func (s *ScrapeJobService) Close(timeout time.Duration) error {
	if timeout <= 0 {
		s.pool.Release()
		return nil
	}
	return s.pool.ReleaseTimeout(timeout)
}

// Start validates and authorizes the request synchronously, then queues
// the scrape. The returned job is in the queued state.
func (s *ScrapeJobService) Start(ctx context.Context, in ScrapeInput) (scrapejob.Job, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeJobService.Start")
	defer span.End()

	in.ScopeID = strings.TrimSpace(in.ScopeID)
	if in.ScopeID == "" {
		return scrapejob.Job{}, fmt.Errorf("%w: scope id is required", ErrInvalidInput)
	}
	if s.authorizer == nil {
		return scrapejob.Job{}, fmt.Errorf("%w: scope authorizer is not configured", ErrUnauthorized)
	}
	if err := s.authorizer.AuthorizeScope(ctx, in.ActorID, in.ScopeID); err != nil {
		return scrapejob.Job{}, err
	}
	token, err := ParseEventReference(in.EventReference)
	if err != nil {
		return scrapejob.Job{}, err
	}

	jobID, err := s.ids.NewID()
	if err != nil {
		return scrapejob.Job{}, fmt.Errorf("generate job id: %w", err)
	}

	now := s.now().UTC()
	job := scrapejob.Job{
		ID:             jobID,
		ScopeID:        in.ScopeID,
		EventName:      firstNonEmpty(strings.TrimSpace(in.EventName), token),
		EventReference: in.EventReference,
		Status:         scrapejob.StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return scrapejob.Job{}, fmt.Errorf("create scrape job: %w", err)
	}

	runCtx := context.WithoutCancel(ctx)
	if err := s.pool.Submit(func() { s.run(runCtx, job.ID, in) }); err != nil {
		s.finish(runCtx, job.ID, nil, err)
		if errors.Is(err, ants.ErrPoolOverload) {
			return scrapejob.Job{}, fmt.Errorf("%w: all scrape workers are busy", ErrDependencyUnavailable)
		}
		return scrapejob.Job{}, fmt.Errorf("submit scrape job: %w", err)
	}

	s.logger.InfoContext(ctx, "scrape job queued", "job_id", job.ID, "scope_id", job.ScopeID, "event_name", job.EventName)
	return job, nil
}

func (s *ScrapeJobService) Get(ctx context.Context, jobID string) (scrapejob.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return scrapejob.Job{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	job, ok, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return scrapejob.Job{}, fmt.Errorf("get scrape job: %w", err)
	}
	if !ok {
		return scrapejob.Job{}, fmt.Errorf("%w: job=%s", ErrNotFound, jobID)
	}
	return job, nil
}

func (s *ScrapeJobService) run(ctx context.Context, jobID string, in ScrapeInput) {
	s.update(ctx, jobID, func(j *scrapejob.Job) { j.Status = scrapejob.StatusRunning })

	in.Progress = func(done, total int) {
		s.update(ctx, jobID, func(j *scrapejob.Job) {
			j.CurrentMatch = done
			j.TotalMatches = total
		})
	}

	summary, err := s.scraper.Scrape(ctx, in)
	s.finish(ctx, jobID, summary, err)
}

func (s *ScrapeJobService) finish(ctx context.Context, jobID string, summary *matchstats.RunSummary, err error) {
	job := s.update(ctx, jobID, func(j *scrapejob.Job) {
		j.Summary = summary
		if err != nil {
			j.Status = scrapejob.StatusFailed
			j.Error = err.Error()
			return
		}
		j.Status = scrapejob.StatusSucceeded
	})

	if err != nil {
		s.logger.WarnContext(ctx, "scrape job failed", "job_id", jobID, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scrape job finished", "job_id", jobID, "status", job.Status)
}

func (s *ScrapeJobService) update(ctx context.Context, jobID string, fn func(*scrapejob.Job)) scrapejob.Job {
	job, err := s.jobs.Update(ctx, jobID, func(j *scrapejob.Job) {
		fn(j)
		j.UpdatedAt = s.now().UTC()
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "update scrape job failed", "job_id", jobID, "error", err)
	}
	return job
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
