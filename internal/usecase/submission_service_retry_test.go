package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/domain/user"
	contestmock "github.com/editathon/contest-api/internal/mocks/domain/contest"
	submissionmock "github.com/editathon/contest-api/internal/mocks/domain/submission"
	idgen "github.com/editathon/contest-api/internal/platform/id"
)

func judgingFixture(t *testing.T) (contest.Contest, submission.Submission, user.Principal, time.Time) {
	t.Helper()

	judgedAt := time.Date(2026, time.March, 12, 9, 30, 0, 0, time.UTC)
	c := contest.Contest{
		ID:             "contest-1",
		Title:          "Retry Contest",
		CreatorID:      "user-coordinator",
		Jury:           []string{"user-juror"},
		PointsOnAccept: 7,
		StartsAt:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		IsPublic:       true,
	}
	pending := submission.Submission{
		ID:           "sub-1",
		ContestID:    c.ID,
		SubmitterID:  "user-writer",
		ArticleTitle: "Retried Article",
		Status:       submission.StatusPending,
		SubmittedAt:  time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	juror := user.Principal{UserID: "user-juror", Role: user.RoleParticipant}

	return c, pending, juror, judgedAt
}

func TestJudgeRetriesOnceOnTransientConflict(t *testing.T) {
	t.Parallel()

	c, pending, juror, judgedAt := judgingFixture(t)

	contests := contestmock.NewRepository(t)
	submissions := submissionmock.NewRepository(t)

	submissions.On("GetByID", mock.Anything, pending.ID).Return(pending, true, nil).Once()
	contests.On("GetByID", mock.Anything, c.ID).Return(c, true, nil).Once()

	judged := pending
	judged.Status = submission.StatusAccepted
	judged.Score = c.PointsOnAccept
	judged.JudgedAt = &judgedAt
	judgedBy := juror.UserID
	judged.JudgedBy = &judgedBy

	submissions.On("Judge", mock.Anything, pending.ID, submission.StatusAccepted, c.PointsOnAccept, juror.UserID, judgedAt).
		Return(submission.Submission{}, false, submission.ErrConflict).Once()
	submissions.On("Judge", mock.Anything, pending.ID, submission.StatusAccepted, c.PointsOnAccept, juror.UserID, judgedAt).
		Return(judged, true, nil).Once()

	svc := NewSubmissionService(contests, submissions, nil, nil, nil, idgen.NewRandomGenerator(), slog.Default())
	svc.now = func() time.Time { return judgedAt }

	got, err := svc.Judge(context.Background(), juror, pending.ID, submission.DecisionAccept)
	if err != nil {
		t.Fatalf("Judge() error = %v", err)
	}
	if got.Status != submission.StatusAccepted || got.Score != c.PointsOnAccept {
		t.Fatalf("judged = %+v", got)
	}
}

func TestJudgeGivesUpAfterSecondConflict(t *testing.T) {
	t.Parallel()

	c, pending, juror, judgedAt := judgingFixture(t)

	contests := contestmock.NewRepository(t)
	submissions := submissionmock.NewRepository(t)

	submissions.On("GetByID", mock.Anything, pending.ID).Return(pending, true, nil).Once()
	contests.On("GetByID", mock.Anything, c.ID).Return(c, true, nil).Once()
	submissions.On("Judge", mock.Anything, pending.ID, submission.StatusAccepted, c.PointsOnAccept, juror.UserID, judgedAt).
		Return(submission.Submission{}, false, submission.ErrConflict).Twice()

	svc := NewSubmissionService(contests, submissions, nil, nil, nil, idgen.NewRandomGenerator(), slog.Default())
	svc.now = func() time.Time { return judgedAt }

	_, err := svc.Judge(context.Background(), juror, pending.ID, submission.DecisionAccept)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("Judge() error = %v, want %v", err, ErrDependencyUnavailable)
	}
}

func TestJudgeDoesNotRetryNonConflictErrors(t *testing.T) {
	t.Parallel()

	c, pending, juror, judgedAt := judgingFixture(t)

	contests := contestmock.NewRepository(t)
	submissions := submissionmock.NewRepository(t)

	storeErr := errors.New("connection reset")
	submissions.On("GetByID", mock.Anything, pending.ID).Return(pending, true, nil).Once()
	contests.On("GetByID", mock.Anything, c.ID).Return(c, true, nil).Once()
	submissions.On("Judge", mock.Anything, pending.ID, submission.StatusAccepted, c.PointsOnAccept, juror.UserID, judgedAt).
		Return(submission.Submission{}, false, storeErr).Once()

	svc := NewSubmissionService(contests, submissions, nil, nil, nil, idgen.NewRandomGenerator(), slog.Default())
	svc.now = func() time.Time { return judgedAt }

	_, err := svc.Judge(context.Background(), juror, pending.ID, submission.DecisionAccept)
	if !errors.Is(err, storeErr) {
		t.Fatalf("Judge() error = %v, want wrapped %v", err, storeErr)
	}
}
