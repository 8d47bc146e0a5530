package matchops

import (
	"testing"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/schedule"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

func buildSchedule(t *testing.T) *schedule.MatchSchedule {
	t.Helper()
	base := time.Date(2014, 4, 26, 13, 0, 0, 0, time.UTC)
	plan := schedule.Plan{
		SlotLengths: schedule.SlotLengths{Pre: 30 * time.Second, Match: 3 * time.Minute, Total: 5 * time.Minute},
		LeaguePeriods: []schedule.PeriodConfig{
			{Description: "main", StartTime: base, EndTime: base.Add(time.Hour), MaxEndTime: base.Add(time.Hour)},
		},
		LeagueEntries: []schedule.PlannedEntry{
			{Num: 0, Arena: "A", Teams: []matchperiod.TLA{"AAA"}},
			{Num: 1, Arena: "A", Teams: []matchperiod.TLA{"BBB"}},
		},
	}
	ms, err := schedule.NewMatchSchedule(plan, map[matchperiod.TLA]teams.Team{})
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}
	return ms
}

func TestInvalidResetDuration(t *testing.T) {
	ms := buildSchedule(t)
	_, err := New(ms, 2*time.Minute, time.Minute, nil)
	if _, ok := err.(*InvalidResetDurationError); !ok {
		t.Fatalf("expected InvalidResetDurationError, got %v", err)
	}
}

func TestInvalidReleasedMatchNumber(t *testing.T) {
	ms := buildSchedule(t)
	_, err := New(ms, time.Minute, time.Minute, &ReleasedMatch{Number: 99})
	if _, ok := err.(*InvalidReleasedMatchNumberError); !ok {
		t.Fatalf("expected InvalidReleasedMatchNumberError, got %v", err)
	}
}

func TestReleasedMatchNumberEqualToFinalIsAllowed(t *testing.T) {
	ms := buildSchedule(t)
	_, err := New(ms, time.Minute, time.Minute, &ReleasedMatch{Number: 1})
	if err != nil {
		t.Fatalf("expected released_match == final match number to be accepted: %v", err)
	}
}

func TestMatchStateTransitions(t *testing.T) {
	ms := buildSchedule(t)
	ops, err := New(ms, time.Minute, time.Minute, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	match := ms.AllMatches()[0]
	at := ops.GetArenaTimes(match)

	if got := ops.GetMatchState(match, at.ReleaseThresholdTime.Add(-time.Second)); got != Future {
		t.Errorf("before threshold = %v, want FUTURE", got)
	}
	if got := ops.GetMatchState(match, at.ReleaseThresholdTime); got != Held {
		t.Errorf("at threshold = %v, want HELD", got)
	}
}

func TestEffectiveNowClampsAtHeldMatch(t *testing.T) {
	ms := buildSchedule(t)
	ops, err := New(ms, time.Minute, time.Minute, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	match := ms.AllMatches()[0]
	at := ops.GetArenaTimes(match)
	farFuture := at.Start.Add(time.Hour)

	eff := ops.EffectiveNow(farFuture)
	if !eff.Equal(at.ReleaseThresholdTime) {
		t.Errorf("effective now = %v, want clamped to %v", eff, at.ReleaseThresholdTime)
	}
}
