package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/editathon/contest-api/internal/domain/authz"
	"github.com/editathon/contest-api/internal/usecase"
)

func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	contests, err := h.contestService.ListPublic(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contests failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		items = append(items, contestToDTO(ctx, c, authz.None))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	c, perms, err := h.contestService.GetByID(ctx, optionalPrincipal(ctx), contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c, perms))
}

func (h *Handler) CreateContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateContest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createContestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: startsAt must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: endsAt must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	c, err := h.contestService.Create(ctx, principal, usecase.CreateContestInput{
		Title:          req.Title,
		Description:    req.Description,
		Jury:           req.Jury,
		PointsOnAccept: req.PointsOnAccept,
		PointsOnReject: req.PointsOnReject,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsPublic:       req.IsPublic,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create contest failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	perms := authz.Evaluate(&principal, c, nil)
	writeSuccess(ctx, w, http.StatusCreated, contestToDTO(ctx, c, perms))
}

type createContestRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	Jury           []string `json:"jury" validate:"dive,required"`
	PointsOnAccept int      `json:"pointsOnAccept" validate:"gte=0"`
	PointsOnReject int      `json:"pointsOnReject" validate:"gte=0"`
	StartsAt       string   `json:"startsAt" validate:"required"`
	EndsAt         string   `json:"endsAt" validate:"required"`
	IsPublic       bool     `json:"isPublic"`
}
