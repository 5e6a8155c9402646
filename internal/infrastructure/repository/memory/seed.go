package memory

import (
	"time"

	"github.com/editathon/contest-api/internal/domain/contest"
)

const (
	ContestIDSpringEditathon = "spring-editathon-2026"
	ContestIDScienceWeek     = "science-week-2026"
)

func SeedContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:             ContestIDSpringEditathon,
			Title:          "Spring Editathon 2026",
			Description:    "Month-long article writing drive for underrepresented topics.",
			CreatorID:      "user-coordinator-01",
			Jury:           []string{"user-juror-01", "user-juror-02"},
			PointsOnAccept: 10,
			PointsOnReject: 0,
			StartsAt:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndsAt:         time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			IsPublic:       true,
		},
		{
			ID:             ContestIDScienceWeek,
			Title:          "Science Week 2026",
			Description:    "Invite-only sprint covering natural science stubs.",
			CreatorID:      "user-coordinator-02",
			Jury:           []string{"user-juror-02", "user-juror-03"},
			PointsOnAccept: 5,
			PointsOnReject: 1,
			StartsAt:       time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
			EndsAt:         time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
			IsPublic:       false,
		},
	}
}
