// Package teams holds the team roster type shared across scheduling,
// scoring, and awards.
package teams

import "github.com/cliffdoyle/srcomp-engine/internal/matchperiod"

// Team is one competing team's static roster entry.
type Team struct {
	TLA             matchperiod.TLA
	Name            string
	Rookie          bool
	DroppedOutAfter *matchperiod.MatchNumber
}

// IsStillAround reports whether the team is still in the competition as of
// (i.e. not dropped out strictly before) the given match number.
func (t Team) IsStillAround(n matchperiod.MatchNumber) bool {
	if t.DroppedOutAfter == nil {
		return true
	}
	return *t.DroppedOutAfter >= n
}
