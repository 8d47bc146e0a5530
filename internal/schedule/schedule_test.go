package schedule

import (
	"testing"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

func at(minute int) time.Time {
	return time.Date(2014, 4, 26, 13, minute, 0, 0, time.UTC)
}

func basicPlan(extra []ExtraSpacing) Plan {
	return Plan{
		SlotLengths: SlotLengths{Total: 5 * time.Minute},
		LeaguePeriods: []PeriodConfig{
			{Description: "main", StartTime: at(0), EndTime: at(60), MaxEndTime: at(60)},
		},
		ExtraSpacings: extra,
		LeagueEntries: []PlannedEntry{
			{Num: 0, Arena: "A", Teams: []matchperiod.TLA{"AAA"}},
			{Num: 1, Arena: "A", Teams: []matchperiod.TLA{"BBB"}},
			{Num: 2, Arena: "A", Teams: []matchperiod.TLA{"CCC"}},
		},
	}
}

func TestExtraSpacingNoDelays(t *testing.T) {
	plan := basicPlan([]ExtraSpacing{{MatchNumbers: "1", Duration: 30 * time.Second}})
	ms, err := NewMatchSchedule(plan, nil)
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}

	want := []time.Time{
		at(0),
		at(5).Add(30 * time.Second),
		at(10).Add(30 * time.Second),
	}
	for i, m := range ms.allMatches {
		if !m.StartTime.Equal(want[i]) {
			t.Errorf("match %d start = %v, want %v", i, m.StartTime, want[i])
		}
	}
}

func TestExtraSpacingFirstMatchHasNoEffect(t *testing.T) {
	plan := basicPlan([]ExtraSpacing{{MatchNumbers: "0", Duration: 30 * time.Second}})
	ms, err := NewMatchSchedule(plan, nil)
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}

	want := []time.Time{at(0), at(5), at(10)}
	for i, m := range ms.allMatches {
		if !m.StartTime.Equal(want[i]) {
			t.Errorf("match %d start = %v, want %v", i, m.StartTime, want[i])
		}
	}
}

func TestDroppedOutTeamBecomesNilSlot(t *testing.T) {
	dropAfter := matchperiod.MatchNumber(0)
	roster := map[matchperiod.TLA]teams.Team{
		"AAA": {TLA: "AAA", DroppedOutAfter: &dropAfter},
	}
	plan := basicPlan(nil)
	ms, err := NewMatchSchedule(plan, roster)
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}

	if ms.allMatches[0].Teams[0] == nil {
		t.Fatalf("AAA should still be around for match 0")
	}

	plan2 := basicPlan(nil)
	plan2.LeagueEntries = []PlannedEntry{
		{Num: 1, Arena: "A", Teams: []matchperiod.TLA{"AAA"}},
	}
	ms2, err := NewMatchSchedule(plan2, roster)
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}
	if ms2.allMatches[0].Teams[0] != nil {
		t.Fatalf("AAA dropped out after match 0, should be nil slot in match 1")
	}
}

func TestOutOfTimeTruncatesPlannedMatches(t *testing.T) {
	plan := basicPlan(nil)
	plan.LeaguePeriods = []PeriodConfig{
		{Description: "short", StartTime: at(0), EndTime: at(8), MaxEndTime: at(8)},
	}
	ms, err := NewMatchSchedule(plan, nil)
	if err != nil {
		t.Fatalf("NewMatchSchedule: %v", err)
	}
	if ms.NPlannedLeagueMatches != 3 {
		t.Fatalf("NPlannedLeagueMatches = %d, want 3", ms.NPlannedLeagueMatches)
	}
	if ms.NLeagueMatches != 2 {
		t.Fatalf("NLeagueMatches = %d, want 2 (third match falls past the period end)", ms.NLeagueMatches)
	}
}

func TestParseRangesInvalid(t *testing.T) {
	for _, expr := range []string{"", "1-", "-4", "1--4", "1-,4", "a", "1,", ",1"} {
		if _, err := ParseRanges(expr); err == nil {
			t.Errorf("ParseRanges(%q) expected error, got none", expr)
		}
	}
}

func TestParseRangesValid(t *testing.T) {
	got, err := ParseRanges("1-4,6,0")
	if err != nil {
		t.Fatalf("ParseRanges: %v", err)
	}
	want := map[matchperiod.MatchNumber]bool{0: true, 1: true, 2: true, 3: true, 4: true, 6: true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for n := range want {
		if !got[n] {
			t.Errorf("missing match number %d", n)
		}
	}
}
