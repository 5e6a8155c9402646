package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/editathon/contest-api/internal/domain/authz"
	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/user"
	idgen "github.com/editathon/contest-api/internal/platform/id"
)

type ContestService struct {
	contestRepo contest.Repository
	ids         idgen.Generator
	now         func() time.Time
}

func NewContestService(contestRepo contest.Repository, ids idgen.Generator) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		ids:         ids,
		now:         time.Now,
	}
}

type CreateContestInput struct {
	Title          string
	Description    string
	Jury           []string
	PointsOnAccept int
	PointsOnReject int
	StartsAt       time.Time
	EndsAt         time.Time
	IsPublic       bool
}

func (s *ContestService) Create(ctx context.Context, actor user.Principal, input CreateContestInput) (contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Create")
	defer span.End()

	if strings.TrimSpace(actor.UserID) == "" {
		return contest.Contest{}, fmt.Errorf("%w: actor is required", ErrUnauthorized)
	}

	contestID, err := s.ids.NewID()
	if err != nil {
		return contest.Contest{}, fmt.Errorf("generate contest id: %w", err)
	}

	c := contest.Contest{
		ID:             contestID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		CreatorID:      actor.UserID,
		Jury:           normalizeJury(input.Jury),
		PointsOnAccept: input.PointsOnAccept,
		PointsOnReject: input.PointsOnReject,
		StartsAt:       input.StartsAt.UTC(),
		EndsAt:         input.EndsAt.UTC(),
		IsPublic:       input.IsPublic,
	}
	if err := c.Validate(); err != nil {
		return contest.Contest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.contestRepo.Create(ctx, c); err != nil {
		return contest.Contest{}, fmt.Errorf("create contest: %w", err)
	}

	return c, nil
}

// GetByID returns the contest together with the actions the actor
// holds on it, so transport layers never re-derive permissions.
func (s *ContestService) GetByID(ctx context.Context, actor *user.Principal, contestID string) (contest.Contest, authz.ActionSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.GetByID")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, authz.None, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, authz.None, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, authz.None, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}

	perms := authz.Evaluate(actor, c, nil)
	if !perms.Has(authz.ActionView) {
		return contest.Contest{}, authz.None, fmt.Errorf("%w: contest=%s", ErrForbidden, contestID)
	}

	return c, perms, nil
}

func (s *ContestService) ListPublic(ctx context.Context) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListPublic")
	defer span.End()

	items, err := s.contestRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public contests: %w", err)
	}

	return items, nil
}

// normalizeJury applies set semantics to the roster: trimmed, deduped,
// sorted so stored rosters compare stable.
func normalizeJury(jury []string) []string {
	seen := make(map[string]struct{}, len(jury))
	out := make([]string, 0, len(jury))
	for _, raw := range jury {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}
