package leaderboard

import (
	"sort"
	"time"

	"github.com/editathon/contest-api/internal/domain/submission"
)

// Entry is one ranked row: a submitter with the sum of scores awarded
// to their accepted submissions.
type Entry struct {
	SubmitterID     string
	TotalScore      int
	AcceptedCount   int
	FirstAcceptedAt time.Time
}

// Compute derives the ranked leaderboard from submissions. Only
// accepted rows contribute; anything else is skipped, not an error.
//
// Ordering: total score descending, then accepted count descending,
// then earliest accepted judged-at ascending, then submitter id
// ascending. The last comparator makes the order total even when two
// submitters share an exact judging instant, so repeated runs over the
// same rows produce identical output.
func Compute(subs []submission.Submission) []Entry {
	bySubmitter := make(map[string]*Entry)
	for _, s := range subs {
		if s.Status != submission.StatusAccepted || s.JudgedAt == nil {
			continue
		}

		e, ok := bySubmitter[s.SubmitterID]
		if !ok {
			e = &Entry{SubmitterID: s.SubmitterID, FirstAcceptedAt: *s.JudgedAt}
			bySubmitter[s.SubmitterID] = e
		}

		e.TotalScore += s.Score
		e.AcceptedCount++
		if s.JudgedAt.Before(e.FirstAcceptedAt) {
			e.FirstAcceptedAt = *s.JudgedAt
		}
	}

	out := make([]Entry, 0, len(bySubmitter))
	for _, e := range bySubmitter {
		out = append(out, *e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		if out[i].AcceptedCount != out[j].AcceptedCount {
			return out[i].AcceptedCount > out[j].AcceptedCount
		}
		if !out[i].FirstAcceptedAt.Equal(out[j].FirstAcceptedAt) {
			return out[i].FirstAcceptedAt.Before(out[j].FirstAcceptedAt)
		}
		return out[i].SubmitterID < out[j].SubmitterID
	})

	return out
}
