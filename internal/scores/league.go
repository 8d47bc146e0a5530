package scores

import (
	"fmt"
	"sort"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/ordered"
)

// LeagueScores aggregates every scored league match into one ranking.
type LeagueScores struct {
	NumTeamsPerArena int

	Teams             map[matchperiod.TLA]TeamScore
	GamePoints        map[matchperiod.MatchId]map[matchperiod.TLA]int
	RankedPoints      map[matchperiod.MatchId]map[matchperiod.TLA]int
	GamePositions     map[matchperiod.MatchId][][]matchperiod.TLA
	LastScoredMatch   *matchperiod.MatchNumber

	// Positions is the stable, insertion-ordered ranking: teams emitted
	// in descending TeamScore order, ties broken only by this insertion
	// order (see RankLeague for the "informational" 1,1,3,... numbering).
	Positions *ordered.Map[matchperiod.TLA, int]
}

// NewLeagueScores builds a LeagueScores from every raw score artefact,
// running each through factory and folding the results together in
// MatchNumber order (required so Positions and LastScoredMatch are
// deterministic).
func NewLeagueScores(
	roster []matchperiod.TLA,
	raws []RawScore,
	factory Factory,
	numTeamsPerArena int,
	extra map[matchperiod.TLA]TeamScore,
) (*LeagueScores, error) {
	sorted := append([]RawScore(nil), raws...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MatchNumber < sorted[j].MatchNumber })

	ls := &LeagueScores{
		NumTeamsPerArena: numTeamsPerArena,
		Teams:            make(map[matchperiod.TLA]TeamScore),
		GamePoints:       make(map[matchperiod.MatchId]map[matchperiod.TLA]int),
		RankedPoints:     make(map[matchperiod.MatchId]map[matchperiod.TLA]int),
		GamePositions:    make(map[matchperiod.MatchId][][]matchperiod.TLA),
	}

	for _, tla := range roster {
		ls.Teams[tla] = TeamScore{}
	}
	for tla, ts := range extra {
		ls.Teams[tla] = ls.Teams[tla].Add(ts)
	}

	for _, raw := range sorted {
		gamePoints, err := runScorer(factory, raw)
		if err != nil {
			return nil, fmt.Errorf("scoring match %d in arena %s: %w", raw.MatchNumber, raw.ArenaID, err)
		}

		var teamOrder []matchperiod.TLA
		disqualified := map[matchperiod.TLA]bool{}
		absent := map[matchperiod.TLA]bool{}
		for tla, data := range raw.TeamsData {
			teamOrder = append(teamOrder, tla)
			if dsq, _ := data["disqualified"].(bool); dsq {
				disqualified[tla] = true
			}
			if present, ok := data["present"].(bool); ok && !present {
				absent[tla] = true
			}
		}
		sort.Slice(teamOrder, func(i, j int) bool { return teamOrder[i] < teamOrder[j] })

		groups := GamePositions(gamePoints, teamOrder, disqualified, absent)
		ranked := RankedPoints(groups, numTeamsPerArena, disqualified, absent)

		id := matchperiod.MatchId{Arena: raw.ArenaID, Num: raw.MatchNumber}
		ls.GamePoints[id] = gamePoints
		ls.RankedPoints[id] = ranked
		ls.GamePositions[id] = groups

		for tla, gp := range gamePoints {
			lp := ranked[tla]
			ls.Teams[tla] = ls.Teams[tla].Add(TeamScore{LeaguePoints: float64(lp), GamePoints: gp})
		}

		if ls.LastScoredMatch == nil || raw.MatchNumber > *ls.LastScoredMatch {
			n := raw.MatchNumber
			ls.LastScoredMatch = &n
		}
	}

	ls.Positions = buildPositions(ls.Teams)

	return ls, nil
}

// buildPositions sorts teams by descending TeamScore, preserving a stable
// secondary order for full ties by iterating a sorted-by-TLA slice rather
// than a bare map (see §9's "ordered mappings" note).
func buildPositions(teams map[matchperiod.TLA]TeamScore) *ordered.Map[matchperiod.TLA, int] {
	tlas := make([]matchperiod.TLA, 0, len(teams))
	for tla := range teams {
		tlas = append(tlas, tla)
	}
	sort.Slice(tlas, func(i, j int) bool { return tlas[i] < tlas[j] })
	sort.SliceStable(tlas, func(i, j int) bool { return teams[tlas[j]].Less(teams[tlas[i]]) })

	m := ordered.New[matchperiod.TLA, int]()
	for i, tla := range tlas {
		m.Set(tla, i+1)
	}
	return m
}

// RankLeague returns the informational, tie-sharing rank (1,1,3,...) for
// every team in Positions, derived from TeamScore equality rather than the
// stable insertion order Positions itself uses.
func (ls *LeagueScores) RankLeague() map[matchperiod.TLA]int {
	tlas := ls.Positions.Keys()
	ranks := make(map[matchperiod.TLA]int, len(tlas))

	rank := 1
	for i, tla := range tlas {
		if i > 0 && !ls.Teams[tlas[i-1]].Equal(ls.Teams[tla]) {
			rank = i + 1
		}
		ranks[tla] = rank
	}
	return ranks
}
