package knockout

import (
	"testing"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

func TestFirstRoundSeeding16(t *testing.T) {
	got := FirstRoundSeeding(16)
	want := [][4]int{
		{0, 7, 8, 15},
		{1, 6, 9, 14},
		{2, 5, 10, 13},
		{3, 4, 11, 12},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d pairings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pairing %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDisplayNameByRoundsRemaining(t *testing.T) {
	if got := DisplayName(0, 1, 7); got != "Final (#7)" {
		t.Errorf("final name = %q", got)
	}
	if got := DisplayName(1, 2, 3); got != "Semi 2 (#3)" {
		t.Errorf("semi name = %q", got)
	}
	if got := DisplayName(2, 1, 0); got != "Quarter 1 (#0)" {
		t.Errorf("quarter name = %q", got)
	}
}

func TestBuildAutomaticFourTeamTiming(t *testing.T) {
	base := time.Date(2014, 4, 26, 13, 0, 0, 0, time.UTC)
	period := matchperiod.MatchPeriod{
		StartTime:  base,
		EndTime:    base.Add(4*time.Hour + 30*time.Minute),
		MaxEndTime: base.Add(4*time.Hour + 30*time.Minute),
	}
	seeds := make([]matchperiod.TLA, 16)
	for i := range seeds {
		seeds[i] = matchperiod.TLA(string(rune('A'+i)) + "AA")
	}

	resolved := func(id matchperiod.MatchId) (map[matchperiod.TLA]int, bool) { return nil, false }

	cfg := AutomaticConfig{
		RoundSpacing:      30 * time.Second,
		FinalDelay:        12 * time.Second,
		SingleArenaRounds: 0,
	}
	arenas := []matchperiod.ArenaName{"A"}

	built, err := BuildAutomatic(period, nil, seeds, cfg, arenas, 4, 0, 5*time.Minute, resolved)
	if err != nil {
		t.Fatalf("BuildAutomatic: %v", err)
	}

	var starts []time.Time
	for _, slot := range built.Matches {
		for _, m := range slot {
			starts = append(starts, m.StartTime)
		}
	}

	if len(starts) != 7 {
		t.Fatalf("got %d matches, want 7 (4 quarters + 2 semis + 1 final)", len(starts))
	}
}

func TestBuildAutomaticAppliesDelays(t *testing.T) {
	base := time.Date(2014, 4, 26, 13, 0, 0, 0, time.UTC)
	period := matchperiod.MatchPeriod{
		StartTime:  base,
		EndTime:    base.Add(4*time.Hour + 30*time.Minute),
		MaxEndTime: base.Add(4*time.Hour + 30*time.Minute),
	}
	seeds := make([]matchperiod.TLA, 4)
	for i := range seeds {
		seeds[i] = matchperiod.TLA(string(rune('A'+i)) + "AA")
	}
	resolved := func(id matchperiod.MatchId) (map[matchperiod.TLA]int, bool) { return nil, false }
	cfg := AutomaticConfig{RoundSpacing: 30 * time.Second}
	arenas := []matchperiod.ArenaName{"A"}

	delay := 10 * time.Minute
	delays := []matchperiod.Delay{{Time: base, Duration: delay}}

	withoutDelay, err := BuildAutomatic(period, nil, seeds, cfg, arenas, 4, 0, 5*time.Minute, resolved)
	if err != nil {
		t.Fatalf("BuildAutomatic (no delay): %v", err)
	}
	withDelay, err := BuildAutomatic(period, delays, seeds, cfg, arenas, 4, 0, 5*time.Minute, resolved)
	if err != nil {
		t.Fatalf("BuildAutomatic (with delay): %v", err)
	}

	firstStart := func(p matchperiod.MatchPeriod) time.Time {
		for _, slot := range p.Matches {
			for _, m := range slot {
				return m.StartTime
			}
		}
		return time.Time{}
	}

	got := firstStart(withDelay).Sub(firstStart(withoutDelay))
	if got != delay {
		t.Errorf("delay shift = %v, want %v", got, delay)
	}
}

func TestParseTeamRefForms(t *testing.T) {
	cases := []struct {
		raw     string
		wantErr bool
	}{
		{"S1", false},
		{"S16", false},
		{"012", false},
		{"R0M1P2", false},
		{"01", true},
		{"0123", true},
		{"Sx", true},
		{"RxMyPz", true},
		{"garbage", true},
	}
	for _, c := range cases {
		_, err := parseTeamRef(c.raw)
		if (err != nil) != c.wantErr {
			t.Errorf("parseTeamRef(%q) err = %v, wantErr %v", c.raw, err, c.wantErr)
		}
	}
}

func TestBuildStaticWrongTeamCount(t *testing.T) {
	cfg := StaticConfig{
		TeamsPerArena: 4,
		Rounds: []StaticRoundConfig{
			{Matches: []StaticMatchConfig{
				{Arena: "A", Teams: []*string{strPtr("S1"), strPtr("S2")}},
			}},
		},
	}
	_, err := BuildStatic(cfg, []matchperiod.TLA{"AAA", "BBB"}, 0, time.Minute, nil)
	if _, ok := err.(*WrongNumberOfTeamsError); !ok {
		t.Fatalf("expected WrongNumberOfTeamsError, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
