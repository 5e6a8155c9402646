package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/editathon/contest-api/internal/domain/authz"
	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/domain/user"
	idgen "github.com/editathon/contest-api/internal/platform/id"
)

// ArticleChecker verifies that a submitted article exists in the
// external encyclopedia. Optional: a nil checker skips the check.
type ArticleChecker interface {
	ArticleExists(ctx context.Context, title string) (bool, error)
}

// ArticleInfo is the encyclopedia metadata attached to submission
// listings when a directory is configured.
type ArticleInfo struct {
	SizeBytes      int
	LastRevisionAt *time.Time
}

// ArticleDirectory resolves metadata for many article titles at once.
// Titles absent from the result simply have no metadata; the listing
// itself never fails because of the directory.
type ArticleDirectory interface {
	ArticleInfos(ctx context.Context, titles []string) map[string]ArticleInfo
}

// JudgedEvent describes one completed judging transition.
type JudgedEvent struct {
	SubmissionID string    `json:"submission_id"`
	ContestID    string    `json:"contest_id"`
	SubmitterID  string    `json:"submitter_id"`
	Status       string    `json:"status"`
	Score        int       `json:"score"`
	JudgedBy     string    `json:"judged_by"`
	JudgedAt     time.Time `json:"judged_at"`
}

// JudgedEventPublisher delivers judged events to interested systems.
// Delivery failures never affect the judging outcome.
type JudgedEventPublisher interface {
	PublishJudged(ctx context.Context, event JudgedEvent) error
}

// LeaderboardInvalidator drops cached leaderboard reads for a contest
// after its judged-submission set changes.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, contestID string)
}

type SubmissionService struct {
	contestRepo    contest.Repository
	submissionRepo submission.Repository
	articles       ArticleChecker
	events         JudgedEventPublisher
	boards         LeaderboardInvalidator
	ids            idgen.Generator
	logger         *slog.Logger
	now            func() time.Time
}

func NewSubmissionService(
	contestRepo contest.Repository,
	submissionRepo submission.Repository,
	articles ArticleChecker,
	events JudgedEventPublisher,
	boards LeaderboardInvalidator,
	ids idgen.Generator,
	logger *slog.Logger,
) *SubmissionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SubmissionService{
		contestRepo:    contestRepo,
		submissionRepo: submissionRepo,
		articles:       articles,
		events:         events,
		boards:         boards,
		ids:            ids,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit creates a pending submission. The contest window is enforced
// here, at creation time; the permission evaluator stays window
// agnostic.
func (s *SubmissionService) Submit(ctx context.Context, actor user.Principal, contestID, articleTitle string) (submission.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Submit")
	defer span.End()

	if strings.TrimSpace(actor.UserID) == "" {
		return submission.Submission{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}

	contestID = strings.TrimSpace(contestID)
	articleTitle = strings.TrimSpace(articleTitle)
	if contestID == "" {
		return submission.Submission{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}
	if articleTitle == "" {
		return submission.Submission{}, fmt.Errorf("%w: article title is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	if perms := authz.Evaluate(&actor, c, nil); !perms.Has(authz.ActionSubmit) {
		return submission.Submission{}, fmt.Errorf("%w: submit on contest=%s", ErrForbidden, contestID)
	}

	now := s.now().UTC()
	if !c.IsOpenAt(now) {
		return submission.Submission{}, fmt.Errorf("%w: contest window is closed", ErrInvalidState)
	}

	if s.articles != nil {
		exists, checkErr := s.articles.ArticleExists(ctx, articleTitle)
		switch {
		case checkErr != nil:
			// The encyclopedia is an external collaborator; its outage
			// must not block submissions.
			s.logger.WarnContext(ctx, "article existence check failed, accepting submission unchecked",
				"contest_id", contestID, "article", articleTitle, "error", checkErr)
		case !exists:
			return submission.Submission{}, fmt.Errorf("%w: article %q does not exist", ErrInvalidInput, articleTitle)
		}
	}

	submissionID, err := s.ids.NewID()
	if err != nil {
		return submission.Submission{}, fmt.Errorf("generate submission id: %w", err)
	}

	sub := submission.Submission{
		ID:           submissionID,
		ContestID:    contestID,
		SubmitterID:  actor.UserID,
		ArticleTitle: articleTitle,
		Status:       submission.StatusPending,
		SubmittedAt:  now,
	}
	if err := sub.Validate(); err != nil {
		return submission.Submission{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return submission.Submission{}, fmt.Errorf("create submission: %w", err)
	}

	return sub, nil
}

// Judge transitions a pending submission to a terminal status, awarding
// the contest's point value as a snapshot. The transition happens at
// most once per submission: the write is conditioned on the row still
// being pending, so concurrent judges have exactly one winner and every
// loser observes ErrInvalidState.
func (s *SubmissionService) Judge(ctx context.Context, actor user.Principal, submissionID string, decision submission.Decision) (submission.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.Judge")
	defer span.End()

	if strings.TrimSpace(actor.UserID) == "" {
		return submission.Submission{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}

	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return submission.Submission{}, fmt.Errorf("%w: submission id is required", ErrInvalidInput)
	}

	sub, exists, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: submission=%s", ErrNotFound, submissionID)
	}
	if sub.Status != submission.StatusPending {
		return submission.Submission{}, fmt.Errorf("%w: submission=%s status=%s", ErrInvalidState, submissionID, sub.Status)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, sub.ContestID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: contest=%s", ErrNotFound, sub.ContestID)
	}

	if perms := authz.Evaluate(&actor, c, &sub); !perms.Has(authz.ActionJudge) {
		return submission.Submission{}, fmt.Errorf("%w: judge on submission=%s", ErrForbidden, submissionID)
	}

	status := decision.Status()
	score := c.PointsOnReject
	if status == submission.StatusAccepted {
		score = c.PointsOnAccept
	}

	judged, won, err := s.judgeWithRetry(ctx, submissionID, status, score, actor.UserID)
	if err != nil {
		return submission.Submission{}, err
	}
	if !won {
		// Lost the race: indistinguishable from a row judged earlier.
		return submission.Submission{}, fmt.Errorf("%w: submission=%s already judged", ErrInvalidState, submissionID)
	}

	if s.boards != nil {
		s.boards.Invalidate(ctx, judged.ContestID)
	}
	s.publishJudged(ctx, judged)

	return judged, nil
}

// judgeWithRetry performs the conditional write, retrying once when the
// store reports a transient conflict (serialization failure, deadlock).
// A pending-guard miss is not retried: it is a terminal-state outcome.
func (s *SubmissionService) judgeWithRetry(ctx context.Context, submissionID string, status submission.Status, score int, judgedBy string) (submission.Submission, bool, error) {
	judgedAt := s.now().UTC()

	judged, won, err := s.submissionRepo.Judge(ctx, submissionID, status, score, judgedBy, judgedAt)
	if err == nil {
		return judged, won, nil
	}
	if !errors.Is(err, submission.ErrConflict) {
		return submission.Submission{}, false, fmt.Errorf("judge submission: %w", err)
	}

	s.logger.WarnContext(ctx, "transient conflict on judging write, retrying once",
		"submission_id", submissionID, "error", err)

	judged, won, err = s.submissionRepo.Judge(ctx, submissionID, status, score, judgedBy, judgedAt)
	if err != nil {
		if errors.Is(err, submission.ErrConflict) {
			return submission.Submission{}, false, fmt.Errorf("%w: judging write keeps conflicting", ErrDependencyUnavailable)
		}
		return submission.Submission{}, false, fmt.Errorf("judge submission: %w", err)
	}

	return judged, won, nil
}

func (s *SubmissionService) publishJudged(ctx context.Context, sub submission.Submission) {
	if s.events == nil || sub.JudgedAt == nil || sub.JudgedBy == nil {
		return
	}

	event := JudgedEvent{
		SubmissionID: sub.ID,
		ContestID:    sub.ContestID,
		SubmitterID:  sub.SubmitterID,
		Status:       string(sub.Status),
		Score:        sub.Score,
		JudgedBy:     *sub.JudgedBy,
		JudgedAt:     *sub.JudgedAt,
	}
	if err := s.events.PublishJudged(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish judged event failed",
			"submission_id", sub.ID, "contest_id", sub.ContestID, "error", err)
	}
}

// GetByID returns a submission the actor may view.
func (s *SubmissionService) GetByID(ctx context.Context, actor *user.Principal, submissionID string) (submission.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.GetByID")
	defer span.End()

	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return submission.Submission{}, fmt.Errorf("%w: submission id is required", ErrInvalidInput)
	}

	sub, exists, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: submission=%s", ErrNotFound, submissionID)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, sub.ContestID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: contest=%s", ErrNotFound, sub.ContestID)
	}

	if perms := authz.Evaluate(actor, c, &sub); !perms.Has(authz.ActionView) {
		return submission.Submission{}, fmt.Errorf("%w: view on submission=%s", ErrForbidden, submissionID)
	}

	return sub, nil
}

// ListByContest returns all submissions of a contest the actor may view.
func (s *SubmissionService) ListByContest(ctx context.Context, actor *user.Principal, contestID string) ([]submission.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.ListByContest")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	if perms := authz.Evaluate(actor, c, nil); !perms.Has(authz.ActionView) {
		return nil, fmt.Errorf("%w: view on contest=%s", ErrForbidden, contestID)
	}

	items, err := s.submissionRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	return items, nil
}
