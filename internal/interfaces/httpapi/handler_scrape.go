package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/darts-league/internal/usecase"
)

type scrapeRequest struct {
	EventURL  string `json:"event_url" validate:"required,max=2048"`
	EventName string `json:"event_name" validate:"omitempty,max=200"`
}

// RunScrape runs the whole event inside the request. Per-match failures
// are reported in the summary, not as an error status.
func (h *Handler) RunScrape(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScrape")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req scrapeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scopeID := r.PathValue("scopeID")
	summary, err := h.scrapeService.Scrape(ctx, usecase.ScrapeInput{
		ActorID:        principal.UserID,
		ScopeID:        scopeID,
		EventReference: req.EventURL,
		EventName:      req.EventName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "scrape failed", "scope_id", scopeID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) StartScrapeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartScrapeJob")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req scrapeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scopeID := r.PathValue("scopeID")
	job, err := h.scrapeJobService.Start(ctx, usecase.ScrapeInput{
		ActorID:        principal.UserID,
		ScopeID:        scopeID,
		EventReference: req.EventURL,
		EventName:      req.EventName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start scrape job failed", "scope_id", scopeID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, scrapeJobToDTO(ctx, job))
}

func (h *Handler) GetScrapeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScrapeJob")
	defer span.End()

	job, err := h.scrapeJobService.Get(ctx, r.PathValue("jobID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scrapeJobToDTO(ctx, job))
}
