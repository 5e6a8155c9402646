package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/editathon/contest-api/internal/domain/leaderboard"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/platform/cache"
)

type LeaderboardService struct {
	submissionRepo submission.Repository
	store          *cache.Store
}

// NewLeaderboardService builds the read-side aggregator. The cache
// store is optional; with a nil store every call recomputes from
// source rows.
func NewLeaderboardService(submissionRepo submission.Repository, store *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		submissionRepo: submissionRepo,
		store:          store,
	}
}

// Compute derives the ranked leaderboard for a contest. An unknown
// contest yields an empty board, not an error: at this layer it is
// indistinguishable from a contest with zero accepted submissions.
func (s *LeaderboardService) Compute(ctx context.Context, contestID string) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Compute")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	if s.store == nil {
		return s.compute(ctx, contestID)
	}

	value, err := s.store.GetOrLoad(ctx, leaderboardCacheKey(contestID), func(ctx context.Context) (any, error) {
		return s.compute(ctx, contestID)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]leaderboard.Entry)
	if !ok {
		return s.compute(ctx, contestID)
	}

	return entries, nil
}

// Invalidate drops the cached board after a judging write commits.
func (s *LeaderboardService) Invalidate(ctx context.Context, contestID string) {
	if s.store == nil {
		return
	}
	s.store.Delete(ctx, leaderboardCacheKey(strings.TrimSpace(contestID)))
}

func (s *LeaderboardService) compute(ctx context.Context, contestID string) ([]leaderboard.Entry, error) {
	rows, err := s.submissionRepo.ListByContestAndStatus(ctx, contestID, submission.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("list accepted submissions: %w", err)
	}

	return leaderboard.Compute(rows), nil
}

func leaderboardCacheKey(contestID string) string {
	return "leaderboard::" + contestID
}
