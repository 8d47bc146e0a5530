package knockout

import (
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/clock"
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/stablerandom"
)

// AutomaticConfig is the knockout.yaml configuration for the
// automatically-seeded bracket.
type AutomaticConfig struct {
	RoundSpacing      time.Duration
	FinalDelay        time.Duration
	Arity             int // 0 means "use every surviving seed"
	SingleArenaRounds int
	SingleArenaArenas []matchperiod.ArenaName
}

// OutOfTimeError is returned when the bracket's host period runs out of
// time mid-round; the caller is expected to surface it as a scheduling
// failure asking for more time or fewer teams.
type OutOfTimeError struct {
	Period matchperiod.MatchPeriod
}

func (e *OutOfTimeError) Error() string {
	return fmt.Sprintf("knockout period %q ran out of time: add more time or reduce the bracket size", e.Period.Description)
}

// BuildAutomatic generates a single-elimination bracket from seeds (already
// filtered to surviving teams and placeholder'd if the league is
// incomplete), scheduling it into period using one Clock shared across all
// rounds.
func BuildAutomatic(
	periodCfg matchperiod.MatchPeriod,
	delays []matchperiod.Delay,
	seeds []matchperiod.TLA,
	cfg AutomaticConfig,
	arenas []matchperiod.ArenaName,
	numTeamsPerArena int,
	startMatchNum matchperiod.MatchNumber,
	matchDuration time.Duration,
	resolved ResolvedLookup,
) (matchperiod.MatchPeriod, error) {
	period := periodCfg
	period.Type = matchperiod.Knockout
	period.Matches = nil

	if cfg.Arity > 0 && cfg.Arity < len(seeds) {
		seeds = seeds[:cfg.Arity]
	}
	arity := len(seeds)

	var seedBytes strings.Builder
	for _, s := range seeds {
		seedBytes.WriteString(string(s))
	}
	rnd := stablerandom.New([]byte(seedBytes.String()))

	pairings := FirstRoundSeeding(arity)
	roundTeams := make([][]matchperiod.TLA, len(pairings))
	for i, p := range pairings {
		roundTeams[i] = []matchperiod.TLA{seeds[p[0]], seeds[p[1]], seeds[p[2]], seeds[p[3]]}
	}

	c := clock.New(period, delays)
	matchNum := startMatchNum

	for len(roundTeams) >= 1 {
		numMatches := len(roundTeams)
		roundsRemaining := bits.Len(uint(numMatches)) - 1

		// roundsRemaining counts the rounds after this one, so this round is
		// among the last SingleArenaRounds rounds when it is strictly less.
		activeArenas := arenas
		if roundsRemaining < cfg.SingleArenaRounds {
			activeArenas = cfg.SingleArenaArenas
		}

		roundMatches := make([]*matchperiod.Match, 0, numMatches)
		queue := append([][]matchperiod.TLA(nil), roundTeams...)
		idx := 0
		for len(queue) > 0 {
			t, err := c.CurrentTime()
			if err != nil {
				return matchperiod.MatchPeriod{}, &OutOfTimeError{Period: period}
			}

			slot := make(matchperiod.MatchSlot, len(activeArenas))
			for _, arena := range activeArenas {
				if len(queue) == 0 {
					break
				}
				teamList := queue[0]
				queue = queue[1:]
				idx++

				padded := padTeams(teamList, numTeamsPerArena)
				stablerandom.Shuffle(rnd, padded)

				match := &matchperiod.Match{
					Num:                matchNum,
					DisplayName:        DisplayName(roundsRemaining, idx, matchNum),
					Arena:              arena,
					Teams:              padded,
					StartTime:          t,
					EndTime:            t.Add(matchDuration),
					Type:               matchperiod.Knockout,
					UseResolvedRanking: roundsRemaining != 0,
				}
				slot[arena] = match
				roundMatches = append(roundMatches, match)
				matchNum++
			}
			period.Matches = append(period.Matches, slot)
			c.AdvanceTime(matchDuration)
		}

		if numMatches == 1 {
			break
		}

		next := make([][]matchperiod.TLA, 0, numMatches/2)
		for i := 0; i+1 < len(roundMatches); i += 2 {
			winnersA := GetWinners(roundMatches[i], resolved)
			winnersB := GetWinners(roundMatches[i+1], resolved)
			next = append(next, append(append([]matchperiod.TLA{}, winnersA...), winnersB...))
		}
		roundTeams = next

		c.AdvanceTime(cfg.RoundSpacing)
		if len(roundTeams) == 1 {
			c.AdvanceTime(cfg.FinalDelay)
		}
	}

	return period, nil
}
