package winners

import (
	"testing"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

func TestComputeTiebreakerFallsBackToPrecedingFinalForThird(t *testing.T) {
	tiebreaker := &matchperiod.Match{Type: matchperiod.Tiebreaker}

	in := Input{
		FinalMatch:                  tiebreaker,
		FinalGamePositions:          [][]matchperiod.TLA{{"BBB"}, {"AAA"}, {matchperiod.Unknowable}, {matchperiod.Unknowable}},
		PrecedingFinalGamePositions: [][]matchperiod.TLA{{"AAA", "BBB", "CCC"}, {"DDD"}},
		Teams:                       map[matchperiod.TLA]teams.Team{},
		LeagueRanks:                 map[matchperiod.TLA]int{},
	}

	awards := Compute(in)

	if got := awards[First]; len(got) != 1 || got[0] != "BBB" {
		t.Errorf("first = %v, want [BBB]", got)
	}
	if got := awards[Second]; len(got) != 1 || got[0] != "AAA" {
		t.Errorf("second = %v, want [AAA]", got)
	}
	if got := awards[Third]; len(got) != 1 || got[0] != "DDD" {
		t.Errorf("third = %v, want [DDD]", got)
	}
}

func TestRookieAwardSharesTieAmongLowestRankedRookies(t *testing.T) {
	roster := map[matchperiod.TLA]teams.Team{
		"AAA": {TLA: "AAA", Rookie: true},
		"BBB": {TLA: "BBB", Rookie: true},
		"CCC": {TLA: "CCC", Rookie: false},
	}
	ranks := map[matchperiod.TLA]int{"AAA": 2, "BBB": 2, "CCC": 1}

	awards := Compute(Input{Teams: roster, LeagueRanks: ranks})

	got := awards[Rookie]
	if len(got) != 2 {
		t.Fatalf("rookie award = %v, want a 2-way tie", got)
	}
}

func TestOverrideReplacesComputedAward(t *testing.T) {
	in := Input{
		FinalGamePositions: [][]matchperiod.TLA{{"AAA"}},
		Overrides:          map[string][]matchperiod.TLA{First: {"ZZZ"}, "committee": {"QQQ"}},
	}
	awards := Compute(in)
	if got := awards[First]; len(got) != 1 || got[0] != "ZZZ" {
		t.Errorf("first override = %v, want [ZZZ]", got)
	}
	if got := awards["committee"]; len(got) != 1 || got[0] != "QQQ" {
		t.Errorf("committee = %v, want [QQQ]", got)
	}
}
