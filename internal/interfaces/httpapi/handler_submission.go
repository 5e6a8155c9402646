package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/usecase"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSubmission")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	contestID := strings.TrimSpace(r.PathValue("contestID"))

	var req createSubmissionRequest
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

	sub, err := h.submissionService.Submit(ctx, principal, contestID, req.ArticleTitle)
	if err != nil {
		h.logger.WarnContext(ctx, "create submission failed", "user_id", principal.UserID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submissionToDTO(ctx, sub))
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSubmission")
	defer span.End()

	submissionID := strings.TrimSpace(r.PathValue("submissionID"))
	sub, err := h.submissionService.GetByID(ctx, optionalPrincipal(ctx), submissionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get submission failed", "submission_id", submissionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(ctx, sub))
}

func (h *Handler) ListSubmissionsByContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSubmissionsByContest")
	defer span.End()

	contestID := strings.TrimSpace(r.PathValue("contestID"))
	subs, err := h.submissionService.ListByContest(ctx, optionalPrincipal(ctx), contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "list submissions failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]submissionDTO, 0, len(subs))
	for _, sub := range subs {
		items = append(items, submissionToDTO(ctx, sub))
	}

	// Best-effort enrichment; titles the directory cannot resolve stay
	// bare.
	if h.articleDirectory != nil && len(items) > 0 {
		titles := make([]string, 0, len(items))
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			if _, ok := seen[item.ArticleTitle]; ok {
				continue
			}
			seen[item.ArticleTitle] = struct{}{}
			titles = append(titles, item.ArticleTitle)
		}

		infos := h.articleDirectory.ArticleInfos(ctx, titles)
		for i := range items {
			if info, ok := infos[items[i].ArticleTitle]; ok {
				items[i].Article = articleInfoToDTO(info)
			}
		}
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) JudgeSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JudgeSubmission")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	submissionID := strings.TrimSpace(r.PathValue("submissionID"))

	var req judgeSubmissionRequest
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

	decision, err := submission.ParseDecision(req.Decision)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	sub, err := h.submissionService.Judge(ctx, principal, submissionID, decision)
	if err != nil {
		h.logger.WarnContext(ctx, "judge submission failed", "user_id", principal.UserID, "submission_id", submissionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(ctx, sub))
}

type createSubmissionRequest struct {
	ArticleTitle string `json:"articleTitle" validate:"required,max=500"`
}

type judgeSubmissionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}
