// Package schedule builds the match schedule from a declarative plan and
// answers the temporal queries (period lookup, delay lookup, staging
// windows) the rest of the engine needs.
package schedule

import (
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// SlotLengths breaks one match's duration into its staging sub-intervals.
type SlotLengths struct {
	Pre   time.Duration
	Match time.Duration
	Post  time.Duration
	Total time.Duration
}

// StagingTimes is the result of a single match's staging-window query.
type StagingTimes struct {
	Opens           time.Time
	Closes          time.Time
	SignalShepherds map[string]time.Time
	SignalTeams     time.Time
}

// StagingConfig carries the per-schedule offsets get_staging_times applies
// relative to a match's start time.
type StagingConfig struct {
	OpensOffset           time.Duration
	ClosesOffset          time.Duration
	SignalShepherdOffsets map[string]time.Duration
	SignalTeamsOffset     time.Duration
}

// PeriodConfig is one configured league or knockout period, before any
// matches have been scheduled into it.
type PeriodConfig struct {
	Description string
	StartTime   time.Time
	EndTime     time.Time
	MaxEndTime  time.Time
}

// ExtraSpacing keys a duration to every match number named by a range
// expression (see ParseRanges).
type ExtraSpacing struct {
	MatchNumbers string
	Duration     time.Duration
}

// PlannedEntry is one (match number, arena, teams) row flattened out of the
// league table, in schedule order.
type PlannedEntry struct {
	Num   matchperiod.MatchNumber
	Arena matchperiod.ArenaName
	Teams []matchperiod.TLA
}

// Plan is everything the match schedule needs to turn a league table into
// wall-clock matches.
type Plan struct {
	SlotLengths    SlotLengths
	Staging        StagingConfig
	Delays         []matchperiod.Delay
	LeaguePeriods  []PeriodConfig
	ExtraSpacings  []ExtraSpacing
	LeagueEntries  []PlannedEntry
}
