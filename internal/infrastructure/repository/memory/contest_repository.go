package memory

import (
	"context"
	"sync"

	"github.com/editathon/contest-api/internal/domain/contest"
)

type ContestRepository struct {
	mu     sync.RWMutex
	items  map[string]contest.Contest
	orders []string
}

func NewContestRepository(contests []contest.Contest) *ContestRepository {
	items := make(map[string]contest.Contest, len(contests))
	orders := make([]string, 0, len(contests))

	for _, c := range contests {
		items[c.ID] = cloneContest(c)
		orders = append(orders, c.ID)
	}

	return &ContestRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ContestRepository) Create(_ context.Context, c contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		r.orders = append(r.orders, c.ID)
	}
	r.items[c.ID] = cloneContest(c)

	return nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[contestID]
	if !ok {
		return contest.Contest{}, false, nil
	}

	return cloneContest(c), true, nil
}

func (r *ContestRepository) ListPublic(_ context.Context) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0, len(r.orders))
	for _, id := range r.orders {
		if c := r.items[id]; c.IsPublic {
			out = append(out, cloneContest(c))
		}
	}

	return out, nil
}

func (r *ContestRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.orders...), nil
}

func cloneContest(c contest.Contest) contest.Contest {
	copied := c
	copied.Jury = append([]string(nil), c.Jury...)
	return copied
}
