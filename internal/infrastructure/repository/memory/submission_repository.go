package memory

import (
	"context"
	"sync"
	"time"

	"github.com/editathon/contest-api/internal/domain/submission"
)

type SubmissionRepository struct {
	mu     sync.Mutex
	items  map[string]submission.Submission
	orders []string
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{items: make(map[string]submission.Submission)}
}

func (r *SubmissionRepository) Create(_ context.Context, s submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; !ok {
		r.orders = append(r.orders, s.ID)
	}
	r.items[s.ID] = cloneSubmission(s)

	return nil
}

func (r *SubmissionRepository) GetByID(_ context.Context, submissionID string) (submission.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[submissionID]
	if !ok {
		return submission.Submission{}, false, nil
	}

	return cloneSubmission(s), true, nil
}

func (r *SubmissionRepository) ListByContest(_ context.Context, contestID string) ([]submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]submission.Submission, 0)
	for _, id := range r.orders {
		if s := r.items[id]; s.ContestID == contestID {
			out = append(out, cloneSubmission(s))
		}
	}

	return out, nil
}

func (r *SubmissionRepository) ListByContestAndStatus(_ context.Context, contestID string, status submission.Status) ([]submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]submission.Submission, 0)
	for _, id := range r.orders {
		if s := r.items[id]; s.ContestID == contestID && s.Status == status {
			out = append(out, cloneSubmission(s))
		}
	}

	return out, nil
}

// Judge is the check-and-set transition: the mutation happens only
// while holding the lock and only if the row is still pending, so
// concurrent judges on one submission have exactly one winner.
func (r *SubmissionRepository) Judge(_ context.Context, submissionID string, status submission.Status, score int, judgedBy string, judgedAt time.Time) (submission.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[submissionID]
	if !ok || s.Status != submission.StatusPending {
		return submission.Submission{}, false, nil
	}

	s.Status = status
	s.Score = score
	s.JudgedBy = &judgedBy
	s.JudgedAt = &judgedAt
	r.items[submissionID] = s

	return cloneSubmission(s), true, nil
}

func cloneSubmission(s submission.Submission) submission.Submission {
	copied := s
	if s.JudgedAt != nil {
		at := *s.JudgedAt
		copied.JudgedAt = &at
	}
	if s.JudgedBy != nil {
		by := *s.JudgedBy
		copied.JudgedBy = &by
	}
	return copied
}
