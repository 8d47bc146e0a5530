package scores

import (
	"sort"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// GamePositions groups TLAs by descending game points into shared ranks:
// result[0] is the set of teams in 1st place (more than one if tied), and
// so on. Disqualified and absent teams are always ranked last as a single
// trailing group, in the order of teamOrder, regardless of their nominal
// game points.
func GamePositions(gamePoints map[matchperiod.TLA]int, teamOrder []matchperiod.TLA, disqualified, absent map[matchperiod.TLA]bool) [][]matchperiod.TLA {
	var ranked []matchperiod.TLA
	var last []matchperiod.TLA
	for _, tla := range teamOrder {
		if disqualified[tla] || absent[tla] {
			last = append(last, tla)
			continue
		}
		ranked = append(ranked, tla)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return gamePoints[ranked[i]] > gamePoints[ranked[j]]
	})

	var groups [][]matchperiod.TLA
	i := 0
	for i < len(ranked) {
		j := i + 1
		for j < len(ranked) && gamePoints[ranked[j]] == gamePoints[ranked[i]] {
			j++
		}
		groups = append(groups, append([]matchperiod.TLA(nil), ranked[i:j]...))
		i = j
	}
	if len(last) > 0 {
		groups = append(groups, last)
	}
	return groups
}

// RankedPoints converts position groups into league points for one match,
// using the standard rule: an arena of size numTeamsPerArena awards
// 2*(numTeamsPerArena-position+1) points for an untied position, with ties
// splitting the sum of the positions they occupy equally among themselves.
// Disqualified/absent teams (the synthetic trailing group produced by
// GamePositions when built from disqualified/absent maps) score 0.
func RankedPoints(groups [][]matchperiod.TLA, numTeamsPerArena int, disqualified, absent map[matchperiod.TLA]bool) map[matchperiod.TLA]int {
	points := make(map[matchperiod.TLA]int)
	position := 1
	for _, group := range groups {
		sum := 0
		for i := 0; i < len(group); i++ {
			sum += 2 * (numTeamsPerArena - (position + i) + 1)
		}
		share := sum / len(group)
		remainder := sum % len(group)
		for idx, tla := range group {
			if disqualified[tla] || absent[tla] {
				points[tla] = 0
				continue
			}
			p := share
			if idx < remainder {
				p++
			}
			points[tla] = p
		}
		position += len(group)
	}
	return points
}
