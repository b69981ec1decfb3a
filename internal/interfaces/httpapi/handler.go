package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/darts-league/internal/domain/matchstats"
	"github.com/riskibarqy/darts-league/internal/domain/qualification"
	"github.com/riskibarqy/darts-league/internal/domain/scrapejob"
	"github.com/riskibarqy/darts-league/internal/platform/logging"
	"github.com/riskibarqy/darts-league/internal/usecase"
)

type ScrapeRunner interface {
	Scrape(ctx context.Context, in usecase.ScrapeInput) (*matchstats.RunSummary, error)
}

type ScrapeJobRunner interface {
	Start(ctx context.Context, in usecase.ScrapeInput) (scrapejob.Job, error)
	Get(ctx context.Context, jobID string) (scrapejob.Job, error)
}

type StatsReader interface {
	Leaderboard(ctx context.Context, q usecase.LeaderboardQuery) ([]matchstats.PlayerAggregate, error)
	PlayerSummary(ctx context.Context, scopeID, playerName string) (usecase.PlayerSummary, error)
	ListEvents(ctx context.Context, scopeID string) ([]usecase.EventSummary, error)
}

type QualificationManager interface {
	SetWinner(ctx context.Context, in usecase.SetWinnerInput) (qualification.EventWinner, error)
	ListQualified(ctx context.Context, scopeID string) ([]matchstats.PlayerAggregate, error)
	QualificationLookup(ctx context.Context, scopeID string) (matchstats.QualifiedFunc, error)
}

type Handler struct {
	scrapeService        ScrapeRunner
	scrapeJobService     ScrapeJobRunner
	aggregationService   StatsReader
	qualificationService QualificationManager
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	scrapeService ScrapeRunner,
	scrapeJobService ScrapeJobRunner,
	aggregationService StatsReader,
	qualificationService QualificationManager,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scrapeService:        scrapeService,
		scrapeJobService:     scrapeJobService,
		aggregationService:   aggregationService,
		qualificationService: qualificationService,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}
