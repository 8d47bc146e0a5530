// Package winners computes the automated first/second/third/rookie awards
// from a resolved competition view, merged with an optional manual
// override file for the remaining award categories.
package winners

import (
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

// Known award names. The override file may additionally name any of the
// manual-only awards (committee, image, web, movement); this package
// never computes those itself.
const (
	First   = "first"
	Second  = "second"
	Third   = "third"
	Rookie  = "rookie"
)

// Awards maps an award name to the team(s) that won it; more than one TLA
// means a tie.
type Awards map[string][]matchperiod.TLA

// Input bundles everything Compute needs.
type Input struct {
	// FinalMatch is the schedule's actual final_match: the tiebreaker if
	// one was injected, otherwise the knockout final.
	FinalMatch *matchperiod.Match

	// FinalGamePositions are FinalMatch's raw, tie-preserving game
	// position groups (FinalMatch always has UseResolvedRanking=false).
	FinalGamePositions [][]matchperiod.TLA

	// PrecedingFinalGamePositions is the original final's game-position
	// groups, only consulted when FinalMatch is a tiebreaker (to recover
	// third place, which the tiebreaker itself doesn't decide).
	PrecedingFinalGamePositions [][]matchperiod.TLA

	Teams       map[matchperiod.TLA]teams.Team
	LeagueRanks map[matchperiod.TLA]int

	// Overrides replaces the computed list for any award name it
	// mentions; a missing/empty map is not an error.
	Overrides map[string][]matchperiod.TLA
}

// Compute derives the automated awards and merges in, Overrides.
func Compute(in Input) Awards {
	awards := make(Awards)

	groups := in.FinalGamePositions
	if len(groups) > 0 {
		awards[First] = groups[0]
	}
	if len(groups) > 1 {
		awards[Second] = groups[1]
	}

	if in.FinalMatch != nil && in.FinalMatch.Type == matchperiod.Tiebreaker {
		if len(in.PrecedingFinalGamePositions) > 1 {
			awards[Third] = in.PrecedingFinalGamePositions[1]
		}
	} else if len(groups) > 2 {
		awards[Third] = groups[2]
	}

	if rookies := rookieAward(in.Teams, in.LeagueRanks); len(rookies) > 0 {
		awards[Rookie] = rookies
	}

	for name, tlas := range in.Overrides {
		awards[name] = tlas
	}

	return awards
}

func rookieAward(roster map[matchperiod.TLA]teams.Team, ranks map[matchperiod.TLA]int) []matchperiod.TLA {
	best := 0
	var winners []matchperiod.TLA
	for tla, team := range roster {
		if !team.Rookie {
			continue
		}
		rank, ok := ranks[tla]
		if !ok {
			continue
		}
		switch {
		case best == 0 || rank < best:
			best = rank
			winners = []matchperiod.TLA{tla}
		case rank == best:
			winners = append(winners, tla)
		}
	}
	return winners
}
