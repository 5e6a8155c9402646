package contest

import (
	"testing"
	"time"
)

func validContest() Contest {
	return Contest{
		ID:             "contest-1",
		Title:          "Spring Editathon",
		CreatorID:      "user-coordinator",
		Jury:           []string{"user-juror"},
		PointsOnAccept: 10,
		StartsAt:       time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestContest_Validate(t *testing.T) {
	t.Parallel()

	if err := validContest().Validate(); err != nil {
		t.Fatalf("valid contest rejected: %v", err)
	}

	c := validContest()
	c.Title = ""
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for missing title")
	}

	c = validContest()
	c.PointsOnAccept = -1
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative accept points")
	}

	c = validContest()
	c.EndsAt = c.StartsAt
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for empty window")
	}
}

func TestContest_IsOpenAt(t *testing.T) {
	t.Parallel()

	c := validContest()

	if c.IsOpenAt(c.StartsAt.Add(-time.Second)) {
		t.Fatal("window open before start")
	}
	if !c.IsOpenAt(c.StartsAt) {
		t.Fatal("window closed at inclusive start")
	}
	if !c.IsOpenAt(c.EndsAt.Add(-time.Second)) {
		t.Fatal("window closed just before end")
	}
	if c.IsOpenAt(c.EndsAt) {
		t.Fatal("window open at exclusive end")
	}
}

func TestContest_IsJuror(t *testing.T) {
	t.Parallel()

	c := validContest()
	if !c.IsJuror("user-juror") {
		t.Fatal("expected jury member")
	}
	if c.IsJuror("user-stranger") {
		t.Fatal("unexpected jury member")
	}
	if c.IsJuror("") {
		t.Fatal("empty user id must never match")
	}
}
