package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/editathon/contest-api/internal/domain/authz"
	"github.com/editathon/contest-api/internal/domain/user"
	"github.com/editathon/contest-api/internal/infrastructure/repository/memory"
	idgen "github.com/editathon/contest-api/internal/platform/id"
)

func newContestFixture(t *testing.T) (*ContestService, *memory.ContestRepository) {
	t.Helper()

	repo := memory.NewContestRepository(memory.SeedContests())
	return NewContestService(repo, idgen.NewRandomGenerator()), repo
}

func TestCreateContestNormalizesInput(t *testing.T) {
	t.Parallel()

	svc, repo := newContestFixture(t)
	ctx := context.Background()
	coordinator := user.Principal{UserID: "user-coordinator-03", Role: user.RoleParticipant}

	created, err := svc.Create(ctx, coordinator, CreateContestInput{
		Title:          "  Winter Editathon  ",
		Description:    " Short stubs welcome. ",
		Jury:           []string{" user-juror-02 ", "user-juror-01", "user-juror-01", "  "},
		PointsOnAccept: 3,
		PointsOnReject: 1,
		StartsAt:       time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsPublic:       true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Fatalf("created contest must carry a generated id")
	}
	if created.Title != "Winter Editathon" {
		t.Fatalf("title = %q", created.Title)
	}
	if created.CreatorID != coordinator.UserID {
		t.Fatalf("creator = %q", created.CreatorID)
	}
	if want := []string{"user-juror-01", "user-juror-02"}; !reflect.DeepEqual(created.Jury, want) {
		t.Fatalf("jury = %v, want %v", created.Jury, want)
	}

	stored, found, err := repo.GetByID(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("stored contest lookup: found=%v err=%v", found, err)
	}
	if stored.Title != created.Title {
		t.Fatalf("stored title = %q", stored.Title)
	}
}

func TestCreateContestErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newContestFixture(t)
	ctx := context.Background()
	coordinator := user.Principal{UserID: "user-coordinator-03", Role: user.RoleParticipant}

	valid := CreateContestInput{
		Title:          "Winter Editathon",
		PointsOnAccept: 3,
		StartsAt:       time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	if _, err := svc.Create(ctx, user.Principal{}, valid); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous Create() error = %v, want %v", err, ErrUnauthorized)
	}

	blankTitle := valid
	blankTitle.Title = "   "
	if _, err := svc.Create(ctx, coordinator, blankTitle); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title error = %v, want %v", err, ErrInvalidInput)
	}

	inverted := valid
	inverted.StartsAt, inverted.EndsAt = inverted.EndsAt, inverted.StartsAt
	if _, err := svc.Create(ctx, coordinator, inverted); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted window error = %v, want %v", err, ErrInvalidInput)
	}

	negative := valid
	negative.PointsOnAccept = -1
	if _, err := svc.Create(ctx, coordinator, negative); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative points error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestGetContestByID(t *testing.T) {
	t.Parallel()

	svc, _ := newContestFixture(t)
	ctx := context.Background()

	c, perms, err := svc.GetByID(ctx, nil, memory.ContestIDSpringEditathon)
	if err != nil {
		t.Fatalf("anonymous GetByID() error = %v", err)
	}
	if c.ID != memory.ContestIDSpringEditathon {
		t.Fatalf("contest = %q", c.ID)
	}
	if perms != authz.ActionSet(authz.ActionView) {
		t.Fatalf("anonymous perms = %v, want view only", perms.Actions())
	}

	creator := user.Principal{UserID: "user-coordinator-02", Role: user.RoleParticipant}
	_, perms, err = svc.GetByID(ctx, &creator, memory.ContestIDScienceWeek)
	if err != nil {
		t.Fatalf("creator GetByID() error = %v", err)
	}
	if !perms.Has(authz.ActionManage) || !perms.Has(authz.ActionJudge) {
		t.Fatalf("creator perms = %v", perms.Actions())
	}

	if _, _, err := svc.GetByID(ctx, nil, memory.ContestIDScienceWeek); !errors.Is(err, ErrForbidden) {
		t.Fatalf("private GetByID() error = %v, want %v", err, ErrForbidden)
	}
	if _, _, err := svc.GetByID(ctx, nil, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing GetByID() error = %v, want %v", err, ErrNotFound)
	}
	if _, _, err := svc.GetByID(ctx, nil, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank id error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestListPublicContests(t *testing.T) {
	t.Parallel()

	svc, _ := newContestFixture(t)

	items, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want the one public seed contest", len(items))
	}
	if items[0].ID != memory.ContestIDSpringEditathon {
		t.Fatalf("public contest = %q", items[0].ID)
	}
}
