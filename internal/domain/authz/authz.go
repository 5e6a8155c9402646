package authz

import (
	"github.com/editathon/contest-api/internal/domain/contest"
	"github.com/editathon/contest-api/internal/domain/submission"
	"github.com/editathon/contest-api/internal/domain/user"
)

// Action is one permission the evaluator can grant on a contest or a
// submission within it.
type Action uint8

const (
	ActionView Action = 1 << iota
	ActionSubmit
	ActionJudge
	ActionManage
)

func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionSubmit:
		return "submit"
	case ActionJudge:
		return "judge"
	case ActionManage:
		return "manage"
	default:
		return "unknown"
	}
}

// ActionSet is a union of granted actions.
type ActionSet uint8

// None is the empty grant. Callers treat it as forbidden, not as an
// error condition.
const None ActionSet = 0

func (s ActionSet) Has(a Action) bool {
	return s&ActionSet(a) != 0
}

func (s ActionSet) Union(other ActionSet) ActionSet {
	return s | other
}

// Actions lists the granted actions in a fixed order so the set is
// reproducible in logs and responses.
func (s ActionSet) Actions() []string {
	out := make([]string, 0, 4)
	for _, a := range []Action{ActionView, ActionSubmit, ActionJudge, ActionManage} {
		if s.Has(a) {
			out = append(out, a.String())
		}
	}

	return out
}

// Evaluate maps (actor, contest, optional submission) to the set of
// permitted actions. It is a pure total function: a nil actor is an
// unauthenticated caller, an actor matching no rule gets None.
//
// Rules combine as a union, most permissive wins. An actor who is both
// creator and juror holds the union of both grants. The evaluator never
// checks the submission window; window enforcement is a creation-time
// precondition owned by the caller.
func Evaluate(actor *user.Principal, c contest.Contest, sub *submission.Submission) ActionSet {
	if actor == nil {
		if c.IsPublic {
			return ActionSet(ActionView)
		}
		return None
	}

	set := None
	if c.IsPublic {
		set = set.Union(ActionSet(ActionView))
	}

	if actor.IsAdministrator() {
		set = set.Union(ActionSet(ActionView | ActionJudge | ActionManage))
	}
	if actor.UserID != "" && actor.UserID == c.CreatorID {
		set = set.Union(ActionSet(ActionView | ActionJudge | ActionManage))
	}
	if c.IsJuror(actor.UserID) {
		set = set.Union(ActionSet(ActionView | ActionJudge))
	}
	if sub != nil && actor.UserID != "" && actor.UserID == sub.SubmitterID {
		set = set.Union(ActionSet(ActionView | ActionSubmit))
	}
	if actor.Role == user.RoleParticipant && set.Has(ActionView) {
		set = set.Union(ActionSet(ActionSubmit))
	}

	return set
}
