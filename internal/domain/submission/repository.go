package submission

import (
	"context"
	"time"
)

// Repository describes submission persistence needs from use cases.
//
// Judge is the single mutating transition: it must set status, score,
// judged_at and judged_by in one atomic write conditioned on the row
// still being pending. It returns ok=false when the row exists but is
// no longer pending (the caller lost the judging race or the row was
// judged earlier); a missing row is also ok=false with a zero value.
// Transient conflicts (serialization failures, deadlocks) are wrapped
// with ErrConflict.
type Repository interface {
	Create(ctx context.Context, s Submission) error
	GetByID(ctx context.Context, submissionID string) (Submission, bool, error)
	ListByContest(ctx context.Context, contestID string) ([]Submission, error)
	ListByContestAndStatus(ctx context.Context, contestID string, status Status) ([]Submission, error)
	Judge(ctx context.Context, submissionID string, status Status, score int, judgedBy string, judgedAt time.Time) (Submission, bool, error)
}
