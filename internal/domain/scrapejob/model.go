package scrapejob

import (
	"time"

	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

type Job struct {
	ID             string
	ScopeID        string
	EventName      string
	EventReference string
	Status         Status
	CurrentMatch   int
	TotalMatches   int
	Summary        *matchstats.RunSummary
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
