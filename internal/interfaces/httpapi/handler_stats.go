package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/darts-league/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	query := r.URL.Query()
	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = v
	}

	scopeID := r.PathValue("scopeID")
	qualified, err := h.qualificationService.QualificationLookup(ctx, scopeID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.aggregationService.Leaderboard(ctx, usecase.LeaderboardQuery{
		ScopeID:   scopeID,
		EventName: strings.TrimSpace(query.Get("event")),
		SortBy:    query.Get("sort_by"),
		Limit:     limit,
		Qualified: qualified,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aggregatesToDTO(ctx, board))
}

func (h *Handler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSummary")
	defer span.End()

	summary, err := h.aggregationService.PlayerSummary(ctx, r.PathValue("scopeID"), r.PathValue("playerName"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSummaryToDTO(ctx, summary))
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	events, err := h.aggregationService.ListEvents(ctx, r.PathValue("scopeID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]eventSummaryDTO, 0, len(events))
	for _, e := range events {
		out = append(out, eventSummaryToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
