package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/editathon/contest-api/internal/domain/contest"
)

type contestTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	CreatorID      string         `db:"creator_id"`
	Jury           pq.StringArray `db:"jury"`
	PointsOnAccept int            `db:"points_on_accept"`
	PointsOnReject int            `db:"points_on_reject"`
	StartsAt       time.Time      `db:"starts_at"`
	EndsAt         time.Time      `db:"ends_at"`
	IsPublic       bool           `db:"is_public"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type contestInsertModel struct {
	PublicID       string         `db:"public_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	CreatorID      string         `db:"creator_id"`
	Jury           pq.StringArray `db:"jury"`
	PointsOnAccept int            `db:"points_on_accept"`
	PointsOnReject int            `db:"points_on_reject"`
	StartsAt       time.Time      `db:"starts_at"`
	EndsAt         time.Time      `db:"ends_at"`
	IsPublic       bool           `db:"is_public"`
}

func (m contestTableModel) toDomain() contest.Contest {
	return contest.Contest{
		ID:             m.PublicID,
		Title:          m.Title,
		Description:    m.Description,
		CreatorID:      m.CreatorID,
		Jury:           append([]string(nil), m.Jury...),
		PointsOnAccept: m.PointsOnAccept,
		PointsOnReject: m.PointsOnReject,
		StartsAt:       m.StartsAt,
		EndsAt:         m.EndsAt,
		IsPublic:       m.IsPublic,
	}
}
