package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/darts-league/internal/usecase"
)

type setEventWinnerRequest struct {
	PlayerName  string `json:"player_name" validate:"required,max=200"`
	EventNumber int    `json:"event_number" validate:"required,min=1"`
}

func (h *Handler) SetEventWinner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEventWinner")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setEventWinnerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scopeID := r.PathValue("scopeID")
	winner, err := h.qualificationService.SetWinner(ctx, usecase.SetWinnerInput{
		ActorID:     principal.UserID,
		ScopeID:     scopeID,
		EventName:   r.PathValue("eventName"),
		EventNumber: req.EventNumber,
		PlayerName:  req.PlayerName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set event winner failed", "scope_id", scopeID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventWinnerToDTO(winner))
}

func (h *Handler) ListQualified(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListQualified")
	defer span.End()

	players, err := h.qualificationService.ListQualified(ctx, r.PathValue("scopeID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aggregatesToDTO(ctx, players))
}
