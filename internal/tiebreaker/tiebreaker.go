// Package tiebreaker detects a tie for first place in the knockout final
// and, if one exists, builds the extra match needed to resolve it.
package tiebreaker

import (
	"sort"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/ordered"
)

// Detect inspects the final's game-position groups (the raw, tie-preserving
// groups a match with UseResolvedRanking=false produces) and reports
// whether more than one team shares first place.
func Detect(finalGamePositions [][]matchperiod.TLA) ([]matchperiod.TLA, bool) {
	if len(finalGamePositions) == 0 || len(finalGamePositions[0]) < 2 {
		return nil, false
	}
	return finalGamePositions[0], true
}

// Build constructs the tiebreaker match and its single-match MatchPeriod.
// tiedTeams is ordered by league rank ascending (best first), breaking ties
// among teams absent from leaguePositions by TLA order, and padded with
// null slots up to numTeamsPerArena.
func Build(
	tiedTeams []matchperiod.TLA,
	leaguePositions *ordered.Map[matchperiod.TLA, int],
	arena matchperiod.ArenaName,
	num matchperiod.MatchNumber,
	numTeamsPerArena int,
	startTime time.Time,
	matchDuration time.Duration,
) matchperiod.MatchPeriod {
	rankedTeams := append([]matchperiod.TLA(nil), tiedTeams...)
	sort.SliceStable(rankedTeams, func(i, j int) bool {
		ri, iok := leaguePositions.Get(rankedTeams[i])
		rj, jok := leaguePositions.Get(rankedTeams[j])
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return rankedTeams[i] < rankedTeams[j]
		}
	})

	teams := make([]*matchperiod.TLA, numTeamsPerArena)
	for i, tla := range rankedTeams {
		if i >= numTeamsPerArena {
			break
		}
		t := tla
		teams[i] = &t
	}

	match := &matchperiod.Match{
		Num:                num,
		DisplayName:        "Tiebreaker",
		Arena:              arena,
		Teams:              teams,
		StartTime:          startTime,
		EndTime:            startTime.Add(matchDuration),
		Type:               matchperiod.Tiebreaker,
		UseResolvedRanking: false,
	}

	return matchperiod.MatchPeriod{
		StartTime:   startTime,
		EndTime:     match.EndTime,
		MaxEndTime:  match.EndTime,
		Description: "Tiebreaker",
		Type:        matchperiod.Tiebreaker,
		Matches:     []matchperiod.MatchSlot{{arena: match}},
	}
}
