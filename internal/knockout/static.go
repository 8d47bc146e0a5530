package knockout

import (
	"fmt"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// WrongNumberOfTeamsError is returned when a static bracket match's team
// list doesn't have exactly TeamsPerArena entries.
type WrongNumberOfTeamsError struct {
	Round, Match int
	Got, Want    int
}

func (e *WrongNumberOfTeamsError) Error() string {
	return fmt.Sprintf("round %d match %d: %d teams listed, want %d", e.Round, e.Match, e.Got, e.Want)
}

// StaticMatchConfig is one declared match in a static bracket.
type StaticMatchConfig struct {
	Arena       matchperiod.ArenaName
	DisplayName string // empty means "use the round-based default"
	StartTime   time.Time
	Teams       []*string // nil entry is a null slot; non-nil is a raw team-reference string
}

// StaticRoundConfig is one round of a static bracket, matches in
// declaration order.
type StaticRoundConfig struct {
	Matches []StaticMatchConfig
}

// StaticConfig is the full declarative bracket read from static_knockout
// in knockout.yaml.
type StaticConfig struct {
	TeamsPerArena int
	Rounds        []StaticRoundConfig
}

// BuildStatic resolves a declarative bracket into a knockout MatchPeriod.
// seeds is the league-seeded team order (1-based S{n} references index
// into it); startMatchNum is the first MatchNumber to assign.
func BuildStatic(
	cfg StaticConfig,
	seeds []matchperiod.TLA,
	startMatchNum matchperiod.MatchNumber,
	matchDuration time.Duration,
	resolved ResolvedLookup,
) (matchperiod.MatchPeriod, error) {
	period := matchperiod.MatchPeriod{Type: matchperiod.Knockout}

	built := make(map[[2]int]*matchperiod.Match)
	matchNum := startMatchNum

	numRounds := len(cfg.Rounds)
	for r, round := range cfg.Rounds {
		roundsRemaining := numRounds - 1 - r
		slot := make(matchperiod.MatchSlot, len(round.Matches))

		for m, mc := range round.Matches {
			if len(mc.Teams) != cfg.TeamsPerArena {
				return matchperiod.MatchPeriod{}, &WrongNumberOfTeamsError{
					Round: r, Match: m, Got: len(mc.Teams), Want: cfg.TeamsPerArena,
				}
			}

			resolvedTeams := make([]*matchperiod.TLA, cfg.TeamsPerArena)
			for i, rawRef := range mc.Teams {
				if rawRef == nil {
					continue
				}
				tla, err := resolveTeamRef(*rawRef, seeds, built, resolved)
				if err != nil {
					return matchperiod.MatchPeriod{}, err
				}
				resolvedTeams[i] = tla
			}

			name := mc.DisplayName
			if name == "" {
				name = DisplayName(roundsRemaining, m+1, matchNum)
			}

			match := &matchperiod.Match{
				Num:                matchNum,
				DisplayName:        name,
				Arena:              mc.Arena,
				Teams:              resolvedTeams,
				StartTime:          mc.StartTime,
				EndTime:            mc.StartTime.Add(matchDuration),
				Type:               matchperiod.Knockout,
				UseResolvedRanking: r != numRounds-1,
			}
			slot[mc.Arena] = match
			built[[2]int{r, m}] = match
			matchNum++
		}

		period.Matches = append(period.Matches, slot)
	}

	return period, nil
}

func resolveTeamRef(
	raw string,
	seeds []matchperiod.TLA,
	built map[[2]int]*matchperiod.Match,
	resolved ResolvedLookup,
) (*matchperiod.TLA, error) {
	ref, err := parseTeamRef(raw)
	if err != nil {
		return nil, err
	}

	switch ref.kind {
	case refSeed:
		if ref.seed < 1 || ref.seed > len(seeds) {
			return nil, &InvalidSeedError{Ref: raw, N: ref.seed, Max: len(seeds)}
		}
		t := seeds[ref.seed-1]
		return &t, nil

	case refPosition:
		match, ok := built[[2]int{ref.round, ref.match}]
		if !ok {
			return nil, &InvalidReferenceError{Ref: raw, Reason: "refers to a match that is not an earlier, already-defined match"}
		}
		if ref.pos < 0 || ref.pos >= len(match.Teams) {
			return nil, &InvalidReferenceError{Ref: raw, Reason: "position out of range for the referenced match"}
		}

		id := matchperiod.MatchId{Arena: match.Arena, Num: match.Num}
		positions, ok := resolved(id)
		if !ok {
			t := matchperiod.Unknowable
			return &t, nil
		}
		for tla, pos := range positions {
			if pos == ref.pos+1 {
				t := tla
				return &t, nil
			}
		}
		t := matchperiod.Unknowable
		return &t, nil

	default:
		return nil, &InvalidReferenceError{Ref: raw, Reason: "unknown reference kind"}
	}
}
