package schedule

import (
	"fmt"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/clock"
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

// MatchSchedule is the fully-resolved sequence of match periods built from
// a Plan, plus the temporal queries the rest of the engine runs against it.
// Knockout and tiebreaker periods are appended to an already-built
// MatchSchedule by their respective packages via AppendPeriod.
type MatchSchedule struct {
	SlotLengths SlotLengths
	Staging     StagingConfig

	Periods []matchperiod.MatchPeriod

	NPlannedLeagueMatches int
	NLeagueMatches        int

	delays     []matchperiod.Delay
	allMatches []*matchperiod.Match // flat, in schedule order
}

type numGroup struct {
	num    matchperiod.MatchNumber
	arenas []matchperiod.ArenaName
	teams  map[matchperiod.ArenaName][]matchperiod.TLA
}

// groupEntries folds a flat PlannedEntry list into ordered per-MatchNumber
// groups, preserving the order each MatchNumber is first seen in.
func groupEntries(entries []PlannedEntry) []numGroup {
	var order []matchperiod.MatchNumber
	byNum := make(map[matchperiod.MatchNumber]*numGroup)

	for _, e := range entries {
		g, ok := byNum[e.Num]
		if !ok {
			g = &numGroup{num: e.Num, teams: make(map[matchperiod.ArenaName][]matchperiod.TLA)}
			byNum[e.Num] = g
			order = append(order, e.Num)
		}
		g.arenas = append(g.arenas, e.Arena)
		g.teams[e.Arena] = e.Teams
	}

	groups := make([]numGroup, 0, len(order))
	for _, num := range order {
		groups = append(groups, *byNum[num])
	}
	return groups
}

// NewMatchSchedule builds the league portion of the schedule from plan,
// consuming plan.LeagueEntries across plan.LeaguePeriods in configured
// order, each period picking up where the last left off.
func NewMatchSchedule(plan Plan, roster map[matchperiod.TLA]teams.Team) (*MatchSchedule, error) {
	extra, err := buildExtraSpacingMap(plan.ExtraSpacings)
	if err != nil {
		return nil, err
	}

	groups := groupEntries(plan.LeagueEntries)

	ms := &MatchSchedule{
		SlotLengths:           plan.SlotLengths,
		Staging:               plan.Staging,
		delays:                plan.Delays,
		NPlannedLeagueMatches: len(groups),
	}

	cursor := 0
	for _, pc := range plan.LeaguePeriods {
		period := matchperiod.MatchPeriod{
			StartTime:   pc.StartTime,
			EndTime:     pc.EndTime,
			MaxEndTime:  pc.MaxEndTime,
			Description: pc.Description,
			Type:        matchperiod.League,
		}

		c := clock.New(period, plan.Delays)
		first := true
		for cursor < len(groups) {
			g := groups[cursor]

			if !first {
				c.AdvanceTime(plan.SlotLengths.Total)
				if d, ok := extra[g.num]; ok {
					c.AdvanceTime(d)
				}
			}
			first = false

			t, err := c.CurrentTime()
			if err != nil {
				break
			}

			slot := make(matchperiod.MatchSlot, len(g.arenas))
			for _, arena := range g.arenas {
				match := &matchperiod.Match{
					Num:                g.num,
					DisplayName:        fmt.Sprintf("Match %d", g.num),
					Arena:              arena,
					Teams:              resolveTeamSlots(g.teams[arena], g.num, roster),
					StartTime:          t,
					EndTime:            t.Add(plan.SlotLengths.Total),
					Type:               matchperiod.League,
					UseResolvedRanking: false,
				}
				slot[arena] = match
				ms.allMatches = append(ms.allMatches, match)
			}
			period.Matches = append(period.Matches, slot)
			cursor++
		}

		ms.Periods = append(ms.Periods, period)
	}

	ms.NLeagueMatches = cursor
	return ms, nil
}

func resolveTeamSlots(tlas []matchperiod.TLA, num matchperiod.MatchNumber, roster map[matchperiod.TLA]teams.Team) []*matchperiod.TLA {
	out := make([]*matchperiod.TLA, len(tlas))
	for i, tla := range tlas {
		if team, ok := roster[tla]; ok && !team.IsStillAround(num) {
			out[i] = nil
			continue
		}
		t := tla
		out[i] = &t
	}
	return out
}

func buildExtraSpacingMap(specs []ExtraSpacing) (map[matchperiod.MatchNumber]time.Duration, error) {
	result := make(map[matchperiod.MatchNumber]time.Duration)
	for _, spec := range specs {
		nums, err := ParseRanges(spec.MatchNumbers)
		if err != nil {
			return nil, err
		}
		for num := range nums {
			result[num] += spec.Duration
		}
	}
	return result, nil
}

// AllMatches returns every match in the schedule, in schedule order.
func (ms *MatchSchedule) AllMatches() []*matchperiod.Match {
	return ms.allMatches
}

// AppendPeriod adds an already-built period (produced by a knockout
// scheduler or the tiebreaker injector) to the schedule.
func (ms *MatchSchedule) AppendPeriod(p matchperiod.MatchPeriod) {
	ms.Periods = append(ms.Periods, p)
	for _, slot := range p.Matches {
		for _, m := range slot {
			ms.allMatches = append(ms.allMatches, m)
		}
	}
}

// NextMatchNumber returns the MatchNumber one past the highest number
// assigned to any match in the schedule so far.
func (ms *MatchSchedule) NextMatchNumber() matchperiod.MatchNumber {
	if len(ms.allMatches) == 0 {
		return 0
	}
	max := ms.allMatches[0].Num
	for _, m := range ms.allMatches {
		if m.Num > max {
			max = m.Num
		}
	}
	return max + 1
}

// PeriodAt returns the period whose [StartTime, MaxEndTime) contains t.
func (ms *MatchSchedule) PeriodAt(t time.Time) (matchperiod.MatchPeriod, bool) {
	for _, p := range ms.Periods {
		if !t.Before(p.StartTime) && t.Before(p.MaxEndTime) {
			return p, true
		}
	}
	return matchperiod.MatchPeriod{}, false
}

// DelayAt returns the cumulative delay in effect at t, from delays within
// the period enclosing t, or zero if t falls in no period or no delay has
// yet taken effect.
func (ms *MatchSchedule) DelayAt(t time.Time) time.Duration {
	period, ok := ms.PeriodAt(t)
	if !ok {
		return 0
	}

	var total time.Duration
	for _, d := range ms.delays {
		if d.Time.Before(period.StartTime) {
			continue
		}
		if d.Time.After(t) {
			continue
		}
		total += d.Duration
	}
	return total
}

// MatchesAt returns every match whose [StartTime, EndTime) contains t.
func (ms *MatchSchedule) MatchesAt(t time.Time) []*matchperiod.Match {
	var result []*matchperiod.Match
	for _, m := range ms.allMatches {
		if !t.Before(m.StartTime) && t.Before(m.EndTime) {
			result = append(result, m)
		}
	}
	return result
}

// FinalMatch returns the last match in schedule order: the knockout final,
// or the tiebreaker if one has been appended.
func (ms *MatchSchedule) FinalMatch() (*matchperiod.Match, bool) {
	if len(ms.allMatches) == 0 {
		return nil, false
	}
	return ms.allMatches[len(ms.allMatches)-1], true
}

// GetStagingTimes derives a match's staging window from the schedule's
// configured staging offsets.
func (ms *MatchSchedule) GetStagingTimes(m *matchperiod.Match) StagingTimes {
	pre := ms.SlotLengths.Pre
	st := StagingTimes{
		Opens:       m.StartTime.Add(pre).Add(-ms.Staging.OpensOffset),
		Closes:      m.StartTime.Add(pre).Add(-ms.Staging.ClosesOffset),
		SignalTeams: m.StartTime.Add(pre).Add(-ms.Staging.SignalTeamsOffset),
	}
	if len(ms.Staging.SignalShepherdOffsets) > 0 {
		st.SignalShepherds = make(map[string]time.Time, len(ms.Staging.SignalShepherdOffsets))
		for name, offset := range ms.Staging.SignalShepherdOffsets {
			st.SignalShepherds[name] = m.StartTime.Add(pre).Add(-offset)
		}
	}
	return st
}
