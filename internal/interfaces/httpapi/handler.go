package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/editathon/contest-api/internal/domain/authz"
	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/leaderboard"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/usecase"
)

type Handler struct {
	contestService     *usecase.ContestService
	submissionService  *usecase.SubmissionService
	leaderboardService *usecase.LeaderboardService
	warmupService      *usecase.LeaderboardWarmupService
	articleDirectory   usecase.ArticleDirectory
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	contestService *usecase.ContestService,
	submissionService *usecase.SubmissionService,
	leaderboardService *usecase.LeaderboardService,
	warmupService *usecase.LeaderboardWarmupService,
	articleDirectory usecase.ArticleDirectory,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		contestService:     contestService,
		submissionService:  submissionService,
		leaderboardService: leaderboardService,
		warmupService:      warmupService,
		articleDirectory:   articleDirectory,
		logger:             logger,
		validator:          validator.New(),
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

type contestDTO struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	CreatorID      string   `json:"creatorId"`
	Jury           []string `json:"jury"`
	PointsOnAccept int      `json:"pointsOnAccept"`
	PointsOnReject int      `json:"pointsOnReject"`
	StartsAt       string   `json:"startsAt"`
	EndsAt         string   `json:"endsAt"`
	IsPublic       bool     `json:"isPublic"`
	Permissions    []string `json:"permissions,omitempty"`
}

type submissionDTO struct {
	ID           string  `json:"id"`
	ContestID    string  `json:"contestId"`
	SubmitterID  string  `json:"submitterId"`
	ArticleTitle string  `json:"articleTitle"`
	Status       string  `json:"status"`
	Score        int     `json:"score"`
	SubmittedAt  string  `json:"submittedAt"`
	JudgedAt     *string `json:"judgedAt,omitempty"`
	JudgedBy     *string `json:"judgedBy,omitempty"`

	Article *articleInfoDTO `json:"article,omitempty"`
}

type articleInfoDTO struct {
	SizeBytes      int     `json:"sizeBytes"`
	LastRevisionAt *string `json:"lastRevisionAt,omitempty"`
}

type leaderboardEntryDTO struct {
	Rank            int    `json:"rank"`
	SubmitterID     string `json:"submitterId"`
	TotalScore      int    `json:"totalScore"`
	AcceptedCount   int    `json:"acceptedCount"`
	FirstAcceptedAt string `json:"firstAcceptedAt"`
}

func contestToDTO(ctx context.Context, v contest.Contest, perms authz.ActionSet) contestDTO {
	ctx, span := startSpan(ctx, "httpapi.contestToDTO")
	defer span.End()

	return contestDTO{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		CreatorID:      v.CreatorID,
		Jury:           append([]string(nil), v.Jury...),
		PointsOnAccept: v.PointsOnAccept,
		PointsOnReject: v.PointsOnReject,
		StartsAt:       v.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:         v.EndsAt.UTC().Format(time.RFC3339),
		IsPublic:       v.IsPublic,
		Permissions:    perms.Actions(),
	}
}

func submissionToDTO(ctx context.Context, v submission.Submission) submissionDTO {
	ctx, span := startSpan(ctx, "httpapi.submissionToDTO")
	defer span.End()

	dto := submissionDTO{
		ID:           v.ID,
		ContestID:    v.ContestID,
		SubmitterID:  v.SubmitterID,
		ArticleTitle: v.ArticleTitle,
		Status:       string(v.Status),
		Score:        v.Score,
		SubmittedAt:  v.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if v.JudgedAt != nil {
		judgedAt := v.JudgedAt.UTC().Format(time.RFC3339)
		dto.JudgedAt = &judgedAt
	}
	if v.JudgedBy != nil {
		judgedBy := *v.JudgedBy
		dto.JudgedBy = &judgedBy
	}

	return dto
}

func articleInfoToDTO(info usecase.ArticleInfo) *articleInfoDTO {
	dto := &articleInfoDTO{SizeBytes: info.SizeBytes}
	if info.LastRevisionAt != nil {
		revisedAt := info.LastRevisionAt.UTC().Format(time.RFC3339)
		dto.LastRevisionAt = &revisedAt
	}

	return dto
}

func leaderboardToDTO(ctx context.Context, entries []leaderboard.Entry) []leaderboardEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardToDTO")
	defer span.End()

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for i, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:            i + 1,
			SubmitterID:     entry.SubmitterID,
			TotalScore:      entry.TotalScore,
			AcceptedCount:   entry.AcceptedCount,
			FirstAcceptedAt: entry.FirstAcceptedAt.UTC().Format(time.RFC3339),
		})
	}

	return items
}
