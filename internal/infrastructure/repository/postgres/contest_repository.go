package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/editathon/contest-api/internal/domain/contest"
	qb "github.com/editathon/contest-api/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) Create(ctx context.Context, c contest.Contest) error {
	insertModel := contestInsertModel{
		PublicID:       c.ID,
		Title:          c.Title,
		Description:    c.Description,
		CreatorID:      c.CreatorID,
		Jury:           pq.StringArray(c.Jury),
		PointsOnAccept: c.PointsOnAccept,
		PointsOnReject: c.PointsOnReject,
		StartsAt:       c.StartsAt,
		EndsAt:         c.EndsAt,
		IsPublic:       c.IsPublic,
	}

	query, args, err := qb.InsertModel("contests", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert contest query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}

	return nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select("*").From("contests").
		Where(
			qb.Eq("public_id", contestID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build get contest by id query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ContestRepository) ListPublic(ctx context.Context) ([]contest.Contest, error) {
	query, args, err := qb.Select("*").From("contests").
		Where(
			qb.Eq("is_public", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list public contests query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list public contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ContestRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("public_id").From("contests").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list contest ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list contest ids: %w", err)
	}

	return ids, nil
}
