// Package matchperiod holds the core scheduling types shared by the match
// schedule, the clock, and both knockout schedulers: TLAs, matches, match
// slots, and match periods.
package matchperiod

import "time"

// TLA is a team's three-letter identifier. A slot with no team in it (an
// empty slot, or a team that has dropped out) is represented by a nil *TLA;
// a team that cannot yet be named is represented by Unknowable.
type TLA string

// Unknowable is the placeholder TLA used where the source shows "???": a
// team reference that cannot yet be resolved because the league has not
// finished or an upstream knockout match has not been scored, distinct from
// a nil slot (which means "no team plays here").
const Unknowable TLA = "???"

// ArenaName is an opaque arena identifier.
type ArenaName string

// MatchNumber is a monotonically increasing, competition-wide unique match
// index (league, then knockout, then tiebreaker).
type MatchNumber int

// MatchId identifies a single arena's match at a given match number.
type MatchId struct {
	Arena ArenaName
	Num   MatchNumber
}

// MatchType distinguishes the three kinds of match this engine schedules.
type MatchType string

const (
	League     MatchType = "league"
	Knockout   MatchType = "knockout"
	Tiebreaker MatchType = "tiebreaker"
)

// Match is one scheduled game: a fixed set of team slots, in a single
// arena, at a single wall-clock time.
type Match struct {
	Num                MatchNumber
	DisplayName        string
	Arena              ArenaName
	Teams              []*TLA
	StartTime          time.Time
	EndTime            time.Time
	Type               MatchType
	UseResolvedRanking bool
}

// MatchSlot maps every arena running a match at one point in time to that
// match. All matches in a slot share StartTime and Num.
type MatchSlot map[ArenaName]*Match

// MatchPeriod is a contiguous block of time during which matches of one
// MatchType are scheduled.
type MatchPeriod struct {
	StartTime   time.Time
	EndTime     time.Time
	MaxEndTime  time.Time
	Description string
	Matches     []MatchSlot
	Type        MatchType
}

// Delay is a one-off timed extension of the schedule: once the clock's
// cursor reaches Time, Duration is added to it.
type Delay struct {
	Time     time.Time
	Duration time.Duration
}

// TLAPtr is a small convenience for building []*TLA literals in tests and
// callers without repeating `t := matchperiod.TLA("AAA"); &t`.
func TLAPtr(s string) *TLA {
	t := TLA(s)
	return &t
}
