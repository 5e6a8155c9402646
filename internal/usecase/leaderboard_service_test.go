package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/infrastructure/repository/memory"
	"github.com/editathon/contest-api/internal/platform/cache"
)

func seedAcceptedSubmission(t *testing.T, repo *memory.SubmissionRepository, id, contestID, submitterID string, score int, judgedAt time.Time) {
	t.Helper()

	judgedBy := "user-juror-01"
	sub := submission.Submission{
		ID:           id,
		ContestID:    contestID,
		SubmitterID:  submitterID,
		ArticleTitle: "Article " + id,
		Status:       submission.StatusAccepted,
		Score:        score,
		SubmittedAt:  judgedAt.Add(-time.Hour),
		JudgedAt:     &judgedAt,
		JudgedBy:     &judgedBy,
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("Create(%s) error = %v", id, err)
	}
}

func TestComputeRanksAcceptedSubmissions(t *testing.T) {
	t.Parallel()

	repo := memory.NewSubmissionRepository()
	svc := NewLeaderboardService(repo, nil)
	ctx := context.Background()

	base := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	seedAcceptedSubmission(t, repo, "sub-1", "contest-1", "writer-a", 10, base)
	seedAcceptedSubmission(t, repo, "sub-2", "contest-1", "writer-b", 10, base.Add(time.Minute))
	seedAcceptedSubmission(t, repo, "sub-3", "contest-1", "writer-b", 10, base.Add(2*time.Minute))

	entries, err := svc.Compute(ctx, "contest-1")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].SubmitterID != "writer-b" || entries[0].TotalScore != 20 {
		t.Fatalf("top entry = %+v", entries[0])
	}
	if entries[1].SubmitterID != "writer-a" || entries[1].TotalScore != 10 {
		t.Fatalf("second entry = %+v", entries[1])
	}
}

func TestComputeUnknownContestYieldsEmptyBoard(t *testing.T) {
	t.Parallel()

	svc := NewLeaderboardService(memory.NewSubmissionRepository(), nil)

	entries, err := svc.Compute(context.Background(), "never-created")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}

	if _, err := svc.Compute(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank contest id error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestComputeCachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	repo := memory.NewSubmissionRepository()
	svc := NewLeaderboardService(repo, cache.NewStore(time.Minute))
	ctx := context.Background()

	base := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	seedAcceptedSubmission(t, repo, "sub-1", "contest-1", "writer-a", 10, base)

	first, err := svc.Compute(ctx, "contest-1")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("len(first) = %d, want 1", len(first))
	}

	// A new accepted row is invisible until the board is invalidated.
	seedAcceptedSubmission(t, repo, "sub-2", "contest-1", "writer-b", 10, base.Add(time.Minute))

	cached, err := svc.Compute(ctx, "contest-1")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("len(cached) = %d, want the stale cached board", len(cached))
	}

	svc.Invalidate(ctx, "contest-1")

	fresh, err := svc.Compute(ctx, "contest-1")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("len(fresh) = %d, want 2 after invalidation", len(fresh))
	}
}
