package scores

import (
	"sort"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/ordered"
)

// KnockoutScores holds the per-match scoring for every knockout (and
// tiebreaker) match, plus the strict, tie-broken ResolvedPositions the
// automatic scheduler's progression and the awards computation both need.
type KnockoutScores struct {
	GamePoints        map[matchperiod.MatchId]map[matchperiod.TLA]int
	RankedPoints      map[matchperiod.MatchId]map[matchperiod.TLA]int
	GamePositions     map[matchperiod.MatchId][][]matchperiod.TLA
	ResolvedPositions map[matchperiod.MatchId]map[matchperiod.TLA]int
}

// NewKnockoutScores scores every raw knockout artefact and resolves ties
// using leaguePositions, skipping resolution for matches that are
// explicitly marked as not using it (the final, and any tiebreaker).
func NewKnockoutScores(
	raws []RawScore,
	factory Factory,
	numTeamsPerArena int,
	leaguePositions *ordered.Map[matchperiod.TLA, int],
	useResolvedRanking map[matchperiod.MatchId]bool,
) (*KnockoutScores, error) {
	ks := &KnockoutScores{
		GamePoints:        make(map[matchperiod.MatchId]map[matchperiod.TLA]int),
		RankedPoints:      make(map[matchperiod.MatchId]map[matchperiod.TLA]int),
		GamePositions:     make(map[matchperiod.MatchId][][]matchperiod.TLA),
		ResolvedPositions: make(map[matchperiod.MatchId]map[matchperiod.TLA]int),
	}

	for _, raw := range raws {
		gamePoints, err := runScorer(factory, raw)
		if err != nil {
			return nil, err
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
		ks.GamePoints[id] = gamePoints
		ks.RankedPoints[id] = ranked
		ks.GamePositions[id] = groups

		if useResolvedRanking[id] {
			ks.ResolvedPositions[id] = resolveTies(groups, leaguePositions)
		}
	}

	return ks, nil
}

// ComputeGamePositions scores a single raw artefact and returns its
// tie-preserving game-position groups, without resolving ties. Used by the
// engine to inspect the knockout final (and a tiebreaker match) directly,
// outside of a full NewKnockoutScores pass.
func ComputeGamePositions(raw RawScore, factory Factory, numTeamsPerArena int) ([][]matchperiod.TLA, error) {
	gamePoints, err := runScorer(factory, raw)
	if err != nil {
		return nil, err
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

	return GamePositions(gamePoints, teamOrder, disqualified, absent), nil
}

// ResolveMatch scores a single raw artefact and resolves its ties against
// leaguePositions, the same rule NewKnockoutScores applies per match. Used
// by the automatic scheduler's resolved-position lookup, which needs one
// match resolved at a time as the bracket is built round by round.
func ResolveMatch(raw RawScore, factory Factory, numTeamsPerArena int, leaguePositions *ordered.Map[matchperiod.TLA, int]) (map[matchperiod.TLA]int, error) {
	groups, err := ComputeGamePositions(raw, factory, numTeamsPerArena)
	if err != nil {
		return nil, err
	}
	return resolveTies(groups, leaguePositions), nil
}

// resolveTies flattens game-position groups into a strict 1..n ranking,
// breaking any tie by league rank (smaller/better league position wins the
// smaller/better resolved position); a team absent from leaguePositions
// sorts after all teams present there, in TLA order, as a final
// deterministic tiebreak.
func resolveTies(groups [][]matchperiod.TLA, leaguePositions *ordered.Map[matchperiod.TLA, int]) map[matchperiod.TLA]int {
	resolved := make(map[matchperiod.TLA]int)
	pos := 1
	for _, group := range groups {
		groupOrder := append([]matchperiod.TLA(nil), group...)
		sort.SliceStable(groupOrder, func(i, j int) bool {
			ri, iok := leaguePositions.Get(groupOrder[i])
			rj, jok := leaguePositions.Get(groupOrder[j])
			switch {
			case iok && jok:
				return ri < rj
			case iok:
				return true
			case jok:
				return false
			default:
				return groupOrder[i] < groupOrder[j]
			}
		})
		for _, tla := range groupOrder {
			resolved[tla] = pos
			pos++
		}
	}
	return resolved
}
