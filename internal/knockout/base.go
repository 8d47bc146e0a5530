// Package knockout builds the single-elimination bracket, both the
// automatically-seeded variant and the declarative static variant, and the
// shared progression helpers (seeding order, display names, winner
// extraction) both of them use.
package knockout

import (
	"fmt"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// FirstRoundSeeding computes the Challonge-style "reverse bracket" pairing
// of seed indices for a bracket of the given arity (must be a multiple of
// four): for arity N = 4R, match m in [0,R) hosts seeds {m, 2R-1-m, 2R+m,
// 4R-1-m}, so the strongest and weakest seeds never meet until the final.
func FirstRoundSeeding(arity int) [][4]int {
	r := arity / 4
	pairings := make([][4]int, r)
	for m := 0; m < r; m++ {
		pairings[m] = [4]int{m, 2*r - 1 - m, 2*r + m, 4*r - 1 - m}
	}
	return pairings
}

// DisplayName labels a knockout match by how many rounds remain after it:
// 0 is the final, 1 the semis, 2 the quarters, anything else a bare
// "Match N". indexInRound is the match's 1-based position within its round.
func DisplayName(roundsRemaining, indexInRound int, num matchperiod.MatchNumber) string {
	switch roundsRemaining {
	case 0:
		return fmt.Sprintf("Final (#%d)", num)
	case 1:
		return fmt.Sprintf("Semi %d (#%d)", indexInRound, num)
	case 2:
		return fmt.Sprintf("Quarter %d (#%d)", indexInRound, num)
	default:
		return fmt.Sprintf("Match %d", num)
	}
}

// ResolvedLookup retrieves a knockout match's resolved positions, once its
// score file has been scored; ok is false while the match remains unplayed.
type ResolvedLookup func(id matchperiod.MatchId) (map[matchperiod.TLA]int, bool)

// GetWinners returns the top two teams of match by resolved position, or a
// pair of Unknowable placeholders if the match hasn't been scored yet.
func GetWinners(match *matchperiod.Match, resolved ResolvedLookup) []matchperiod.TLA {
	id := matchperiod.MatchId{Arena: match.Arena, Num: match.Num}
	positions, ok := resolved(id)
	if !ok {
		return []matchperiod.TLA{matchperiod.Unknowable, matchperiod.Unknowable}
	}

	type ranked struct {
		tla matchperiod.TLA
		pos int
	}
	var entries []ranked
	for _, t := range match.Teams {
		if t == nil {
			continue
		}
		if pos, ok := positions[*t]; ok {
			entries = append(entries, ranked{tla: *t, pos: pos})
		}
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].pos < entries[j-1].pos; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}

	winners := []matchperiod.TLA{matchperiod.Unknowable, matchperiod.Unknowable}
	for i := 0; i < len(entries) && i < 2; i++ {
		winners[i] = entries[i].tla
	}
	return winners
}

// padTeams pads teams with nils up to n entries, for a match slot that has
// fewer entrants than the arena has corners.
func padTeams(teamList []matchperiod.TLA, n int) []*matchperiod.TLA {
	out := make([]*matchperiod.TLA, n)
	for i := 0; i < n; i++ {
		if i < len(teamList) {
			t := teamList[i]
			out[i] = &t
		}
	}
	return out
}
