package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/editathon/contest-api/internal/usecase"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))

	// Visibility follows the contest itself. An unknown contest yields an
	// empty board rather than an error.
	if _, _, err := h.contestService.GetByID(ctx, optionalPrincipal(ctx), contestID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			writeSuccess(ctx, w, http.StatusOK, []leaderboardEntryDTO{})
			return
		}
		h.logger.WarnContext(ctx, "leaderboard contest lookup failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.Compute(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute leaderboard failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, entries))
}

func (h *Handler) RunRefreshLeaderboardsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshLeaderboardsJob")
	defer span.End()

	result, err := h.warmupService.RefreshAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh leaderboards job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, warmupResultDTO{
		Contests:  result.Contests,
		Refreshed: result.Refreshed,
		Failed:    result.Failed,
	})
}

type warmupResultDTO struct {
	Contests  int `json:"contests"`
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}
