package contest

import (
	"fmt"
	"time"
)

// Contest is a time-boxed container of article submissions with fixed
// point values for accept and reject outcomes.
type Contest struct {
	ID             string
	Title          string
	Description    string
	CreatorID      string
	Jury           []string
	PointsOnAccept int
	PointsOnReject int
	StartsAt       time.Time
	EndsAt         time.Time
	IsPublic       bool
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("contest title is required")
	}
	if c.CreatorID == "" {
		return fmt.Errorf("contest creator id is required")
	}
	if c.PointsOnAccept < 0 {
		return fmt.Errorf("points on accept must be >= 0")
	}
	if c.PointsOnReject < 0 {
		return fmt.Errorf("points on reject must be >= 0")
	}
	if !c.EndsAt.After(c.StartsAt) {
		return fmt.Errorf("contest window must end after it starts")
	}

	return nil
}

// IsOpenAt reports whether the submission window [StartsAt, EndsAt)
// contains the given instant.
func (c Contest) IsOpenAt(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.EndsAt)
}

// IsJuror reports jury roster membership, independent of account role.
func (c Contest) IsJuror(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range c.Jury {
		if id == userID {
			return true
		}
	}

	return false
}
