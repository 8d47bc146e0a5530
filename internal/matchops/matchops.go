// Package matchops implements the FUTURE/HELD/RELEASED match state
// machine and the staging/shepherding window queries built on top of it.
package matchops

import (
	"fmt"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/schedule"
)

// MatchState is where a match sits in the release workflow.
type MatchState int

const (
	Future MatchState = iota
	Held
	Released
)

func (s MatchState) String() string {
	switch s {
	case Future:
		return "FUTURE"
	case Held:
		return "HELD"
	case Released:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// ReleasedMatch records the match number operators have committed to
// starting, and when.
type ReleasedMatch struct {
	Number matchperiod.MatchNumber
	Time   time.Time
}

// InvalidResetDurationError is returned when ResetDuration is shorter than
// ReleaseThreshold.
type InvalidResetDurationError struct {
	ReleaseThreshold, ResetDuration time.Duration
}

func (e *InvalidResetDurationError) Error() string {
	return fmt.Sprintf("reset duration %s is shorter than release threshold %s", e.ResetDuration, e.ReleaseThreshold)
}

// InvalidReleasedMatchNumberError is returned when ReleasedMatch names a
// match number the schedule doesn't contain.
type InvalidReleasedMatchNumberError struct {
	Number matchperiod.MatchNumber
}

func (e *InvalidReleasedMatchNumberError) Error() string {
	return fmt.Sprintf("released match number %d is not in the schedule", e.Number)
}

// ArenaTimes is one match's resolved start/end/release-threshold instants.
type ArenaTimes struct {
	Start                time.Time
	End                  time.Time
	ReleaseThresholdTime time.Time
}

// ActiveMatch pairs a match with the real wall-clock instant a
// GetMatchesAt query was made for.
type ActiveMatch struct {
	Match *matchperiod.Match
	Time  time.Time
}

// Operations is the resolved operational view over a built schedule.
type Operations struct {
	schedule *schedule.MatchSchedule

	ReleaseThreshold time.Duration
	ResetDuration    time.Duration
	ReleasedMatch    *ReleasedMatch
}

// New validates and builds an Operations view.
func New(sched *schedule.MatchSchedule, releaseThreshold, resetDuration time.Duration, released *ReleasedMatch) (*Operations, error) {
	if resetDuration < releaseThreshold {
		return nil, &InvalidResetDurationError{ReleaseThreshold: releaseThreshold, ResetDuration: resetDuration}
	}

	if released != nil {
		found := false
		for _, m := range sched.AllMatches() {
			if m.Num == released.Number {
				found = true
				break
			}
		}
		if !found {
			return nil, &InvalidReleasedMatchNumberError{Number: released.Number}
		}
	}

	return &Operations{
		schedule:         sched,
		ReleaseThreshold: releaseThreshold,
		ResetDuration:    resetDuration,
		ReleasedMatch:    released,
	}, nil
}

// GetArenaTimes derives a match's staged start/end and release-threshold
// instant from the schedule's slot lengths.
func (o *Operations) GetArenaTimes(m *matchperiod.Match) ArenaTimes {
	start := m.StartTime.Add(o.schedule.SlotLengths.Pre)
	return ArenaTimes{
		Start:                start,
		End:                  start.Add(o.schedule.SlotLengths.Match),
		ReleaseThresholdTime: start.Add(-o.ReleaseThreshold),
	}
}

func (o *Operations) isReleased(m *matchperiod.Match) bool {
	return o.ReleasedMatch != nil && m.Num <= o.ReleasedMatch.Number
}

// GetMatchState classifies m at instant now.
func (o *Operations) GetMatchState(m *matchperiod.Match, now time.Time) MatchState {
	if o.isReleased(m) {
		return Released
	}
	if !now.Before(o.GetArenaTimes(m).ReleaseThresholdTime) {
		return Held
	}
	return Future
}

// EffectiveNow returns now, unless the earliest unreleased match in the
// schedule is already HELD, in which case it clamps to that match's
// release threshold, pausing downstream queries at the moment operators
// were first asked to commit to it.
func (o *Operations) EffectiveNow(now time.Time) time.Time {
	for _, m := range o.schedule.AllMatches() {
		if o.isReleased(m) {
			continue
		}
		threshold := o.GetArenaTimes(m).ReleaseThresholdTime
		if !now.Before(threshold) {
			return threshold
		}
		return now
	}
	return now
}

// GetMatchesAt returns the matches relevant at now: those currently
// playing, those within their staging window, and those whose earliest
// shepherd signal has fired but which haven't yet passed staging-closes.
// All time-sensitive comparisons use EffectiveNow; the Time field on each
// result is the real now passed in.
func (o *Operations) GetMatchesAt(now time.Time) []ActiveMatch {
	eff := o.EffectiveNow(now)

	seen := make(map[matchperiod.MatchId]bool)
	var matches []*matchperiod.Match
	add := func(m *matchperiod.Match) {
		id := matchperiod.MatchId{Arena: m.Arena, Num: m.Num}
		if !seen[id] {
			seen[id] = true
			matches = append(matches, m)
		}
	}

	for _, m := range o.schedule.MatchesAt(eff) {
		add(m)
	}

	for _, m := range o.schedule.AllMatches() {
		st := o.schedule.GetStagingTimes(m)
		if !eff.Before(st.Opens) && eff.Before(st.Closes) {
			add(m)
			continue
		}

		var earliestSignal time.Time
		for _, t := range st.SignalShepherds {
			if earliestSignal.IsZero() || t.Before(earliestSignal) {
				earliestSignal = t
			}
		}
		if !earliestSignal.IsZero() && !eff.Before(earliestSignal) && eff.Before(st.Closes) {
			add(m)
		}
	}

	out := make([]ActiveMatch, len(matches))
	for i, m := range matches {
		out[i] = ActiveMatch{Match: m, Time: now}
	}
	return out
}
