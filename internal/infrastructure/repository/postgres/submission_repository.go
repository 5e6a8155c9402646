package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/editathon/contest-api/internal/domain/submission"
	qb "github.com/editathon/contest-api/internal/platform/querybuilder"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s submission.Submission) error {
	insertModel := submissionInsertModel{
		PublicID:        s.ID,
		ContestPublicID: s.ContestID,
		SubmitterID:     s.SubmitterID,
		ArticleTitle:    s.ArticleTitle,
		Status:          string(s.Status),
		Score:           s.Score,
		SubmittedAt:     s.SubmittedAt,
	}

	query, args, err := qb.InsertModel("submissions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert submission query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, submissionID string) (submission.Submission, bool, error) {
	query, args, err := qb.Select("*").From("submissions").
		Where(
			qb.Eq("public_id", submissionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("build get submission by id query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return submission.Submission{}, false, nil
		}
		return submission.Submission{}, false, fmt.Errorf("get submission by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SubmissionRepository) ListByContest(ctx context.Context, contestID string) ([]submission.Submission, error) {
	return r.list(ctx,
		qb.Eq("contest_public_id", contestID),
		qb.IsNull("deleted_at"),
	)
}

func (r *SubmissionRepository) ListByContestAndStatus(ctx context.Context, contestID string, status submission.Status) ([]submission.Submission, error) {
	return r.list(ctx,
		qb.Eq("contest_public_id", contestID),
		qb.Eq("status", string(status)),
		qb.IsNull("deleted_at"),
	)
}

func (r *SubmissionRepository) list(ctx context.Context, conditions ...qb.Condition) ([]submission.Submission, error) {
	query, args, err := qb.Select("*").From("submissions").
		Where(conditions...).
		OrderBy("submitted_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list submissions query: %w", err)
	}

	var rows []submissionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	out := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Judge performs the conditional transition in one statement: the
// UPDATE is guarded by status='pending', so of any number of
// concurrent judges exactly one sees a row back and every other caller
// gets ok=false. Serialization failures and deadlocks are wrapped with
// submission.ErrConflict for the caller's single retry.
func (r *SubmissionRepository) Judge(ctx context.Context, submissionID string, status submission.Status, score int, judgedBy string, judgedAt time.Time) (submission.Submission, bool, error) {
	query, args, err := qb.Update("submissions").
		Set("status", string(status)).
		Set("score", score).
		Set("judged_by", judgedBy).
		Set("judged_at", judgedAt).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", submissionID),
			qb.Eq("status", string(submission.StatusPending)),
			qb.IsNull("deleted_at"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("build judge submission query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			// Row missing or no longer pending; the caller decides
			// which it was from its earlier read.
			return submission.Submission{}, false, nil
		}
		if isTransientConflict(err) {
			return submission.Submission{}, false, fmt.Errorf("judge submission %s: %w", submissionID, submission.ErrConflict)
		}
		return submission.Submission{}, false, fmt.Errorf("judge submission: %w", err)
	}

	return row.toDomain(), true, nil
}
