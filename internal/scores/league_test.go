package scores

import (
	"testing"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

type fakeScorer struct {
	points map[matchperiod.TLA]int
}

func (f fakeScorer) CalculateScores() (map[matchperiod.TLA]int, error) {
	return f.points, nil
}

func TestLeagueScoresDisqualifiedAndAbsent(t *testing.T) {
	points := map[matchperiod.TLA]int{"JMS": 4, "PAS": 0, "RUN": 8, "ICE": 2}
	factory := func(teamsData map[string]any, arenaData map[string]any) (Scorer, error) {
		return fakeScorer{points: points}, nil
	}

	raw := RawScore{
		ArenaID:     "A",
		MatchNumber: 1,
		TeamsData: map[matchperiod.TLA]map[string]any{
			"JMS": {"disqualified": true},
			"PAS": {"present": false},
			"RUN": {},
			"ICE": {},
		},
	}

	ls, err := NewLeagueScores(
		[]matchperiod.TLA{"JMS", "PAS", "RUN", "ICE"},
		[]RawScore{raw},
		factory,
		4,
		nil,
	)
	if err != nil {
		t.Fatalf("NewLeagueScores: %v", err)
	}

	want := map[matchperiod.TLA]TeamScore{
		"JMS": {LeaguePoints: 0, GamePoints: 4},
		"PAS": {LeaguePoints: 0, GamePoints: 0},
		"RUN": {LeaguePoints: 8, GamePoints: 8},
		"ICE": {LeaguePoints: 6, GamePoints: 2},
	}
	for tla, ts := range want {
		got := ls.Teams[tla]
		if !got.Equal(ts) {
			t.Errorf("team %s = %+v, want %+v", tla, got, ts)
		}
	}
}

func TestLeagueScoresFullTieSharesRank(t *testing.T) {
	points := map[matchperiod.TLA]int{"AAA": 1, "BBB": 1}
	factory := func(teamsData map[string]any, arenaData map[string]any) (Scorer, error) {
		return fakeScorer{points: points}, nil
	}
	raw := RawScore{
		ArenaID:     "A",
		MatchNumber: 1,
		TeamsData: map[matchperiod.TLA]map[string]any{
			"AAA": {},
			"BBB": {},
		},
	}
	ls, err := NewLeagueScores([]matchperiod.TLA{"AAA", "BBB"}, []RawScore{raw}, factory, 2, nil)
	if err != nil {
		t.Fatalf("NewLeagueScores: %v", err)
	}

	ranks := ls.RankLeague()
	if ranks["AAA"] != ranks["BBB"] {
		t.Fatalf("expected a full tie to share a rank, got AAA=%d BBB=%d", ranks["AAA"], ranks["BBB"])
	}
}
