package postgres

import (
	"database/sql"
	"time"

	"github.com/editathon/contest-api/internal/domain/submission"
)

type submissionTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	ContestPublicID string         `db:"contest_public_id"`
	SubmitterID     string         `db:"submitter_id"`
	ArticleTitle    string         `db:"article_title"`
	Status          string         `db:"status"`
	Score           int            `db:"score"`
	SubmittedAt     time.Time      `db:"submitted_at"`
	JudgedAt        sql.NullTime   `db:"judged_at"`
	JudgedBy        sql.NullString `db:"judged_by"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type submissionInsertModel struct {
	PublicID        string    `db:"public_id"`
	ContestPublicID string    `db:"contest_public_id"`
	SubmitterID     string    `db:"submitter_id"`
	ArticleTitle    string    `db:"article_title"`
	Status          string    `db:"status"`
	Score           int       `db:"score"`
	SubmittedAt     time.Time `db:"submitted_at"`
}

func (m submissionTableModel) toDomain() submission.Submission {
	return submission.Submission{
		ID:           m.PublicID,
		ContestID:    m.ContestPublicID,
		SubmitterID:  m.SubmitterID,
		ArticleTitle: m.ArticleTitle,
		Status:       submission.Status(m.Status),
		Score:        m.Score,
		SubmittedAt:  m.SubmittedAt,
		JudgedAt:     nullTimeToTimePtr(m.JudgedAt),
		JudgedBy:     nullStringToStringPtr(m.JudgedBy),
	}
}
