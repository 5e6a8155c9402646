package submission

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a submission. Pending is the only
// non-terminal state; exactly one transition out of it ever happens.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Decision is a judging verdict.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(v string) (Decision, error) {
	switch Decision(v) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	default:
		return "", fmt.Errorf("unknown decision %q", v)
	}
}

// Status returns the terminal status this decision transitions into.
func (d Decision) Status() Status {
	if d == DecisionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

// ErrConflict marks a transient storage conflict on the judging
// check-and-set. Callers may retry once; it is not a terminal-state
// violation.
var ErrConflict = errors.New("submission write conflict")

// Submission is one participant entry in a contest. Score is a snapshot
// of the contest point value at judging time, never recomputed.
type Submission struct {
	ID           string
	ContestID    string
	SubmitterID  string
	ArticleTitle string
	Status       Status
	Score        int
	SubmittedAt  time.Time
	JudgedAt     *time.Time
	JudgedBy     *string
}

func (s Submission) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("submission id is required")
	}
	if s.ContestID == "" {
		return fmt.Errorf("submission contest id is required")
	}
	if s.SubmitterID == "" {
		return fmt.Errorf("submission submitter id is required")
	}
	if s.ArticleTitle == "" {
		return fmt.Errorf("submission article title is required")
	}

	return nil
}
