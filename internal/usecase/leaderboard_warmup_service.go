package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/editathon/contest-api/internal/domain/contest"
)

// LeaderboardWarmupService recomputes every contest's leaderboard on a
// bounded worker pool, priming the read cache after deploys or cache
// flushes. Exposed as an internal job route.
type LeaderboardWarmupService struct {
	contestRepo contest.Repository
	boards      *LeaderboardService
	poolSize    int
	logger      *slog.Logger
}

func NewLeaderboardWarmupService(contestRepo contest.Repository, boards *LeaderboardService, poolSize int, logger *slog.Logger) *LeaderboardWarmupService {
	if poolSize < 1 {
		poolSize = 4
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LeaderboardWarmupService{
		contestRepo: contestRepo,
		boards:      boards,
		poolSize:    poolSize,
		logger:      logger,
	}
}

type WarmupResult struct {
	Contests  int
	Refreshed int
	Failed    int
}

func (s *LeaderboardWarmupService) RefreshAll(ctx context.Context) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardWarmupService.RefreshAll")
	defer span.End()

	ids, err := s.contestRepo.ListIDs(ctx)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("list contest ids: %w", err)
	}
	if len(ids) == 0 {
		return WarmupResult{}, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("%w: create warmup pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var failed atomic.Int64
	for _, contestID := range ids {
		contestID := contestID
		wg.Add(1)
		task := func() {
			defer wg.Done()
			s.boards.Invalidate(ctx, contestID)
			if _, computeErr := s.boards.Compute(ctx, contestID); computeErr != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "leaderboard warmup failed", "contest_id", contestID, "error", computeErr)
			}
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			// Pool rejected the task (released or saturated beyond
			// queueing); run inline rather than skipping the contest.
			task()
		}
	}
	wg.Wait()

	result := WarmupResult{
		Contests:  len(ids),
		Refreshed: len(ids) - int(failed.Load()),
		Failed:    int(failed.Load()),
	}

	return result, nil
}
