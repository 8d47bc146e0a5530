// Package compio reads the YAML documents that make up a competition
// state directory into plain Go structs, ready for the engine to turn
// into a resolved view.
package compio

import "time"

// ScheduleDoc is schedule.yaml: the declarative plan.
type ScheduleDoc struct {
	MatchSlotLengths struct {
		Pre   int `yaml:"pre"`
		Match int `yaml:"match"`
		Post  int `yaml:"post"`
		Total int `yaml:"total"`
	} `yaml:"match_slot_lengths"`

	Staging struct {
		Opens           int            `yaml:"opens"`
		Closes          int            `yaml:"closes"`
		Duration        int            `yaml:"duration"`
		SignalShepherds map[string]int `yaml:"signal_shepherds"`
		SignalTeams     int            `yaml:"signal_teams"`
	} `yaml:"staging"`

	Delays []struct {
		Delay int       `yaml:"delay"`
		Time  time.Time `yaml:"time"`
	} `yaml:"delays"`

	MatchPeriods struct {
		League   []PeriodDoc `yaml:"league"`
		Knockout []PeriodDoc `yaml:"knockout"`
	} `yaml:"match_periods"`

	League struct {
		ExtraSpacing []struct {
			MatchNumbers string `yaml:"match_numbers"`
			Duration     int    `yaml:"duration"`
		} `yaml:"extra_spacing"`
	} `yaml:"league"`
}

// PeriodDoc is one entry of match_periods.league or match_periods.knockout.
type PeriodDoc struct {
	Description string    `yaml:"description"`
	StartTime   time.Time `yaml:"start_time"`
	EndTime     time.Time `yaml:"end_time"`
	MaxEndTime  time.Time `yaml:"max_end_time"`
}

// LeagueDoc is league.yaml: the match number to arena to team-list table.
type LeagueDoc struct {
	Matches map[int]map[string][]string `yaml:"matches"`
}

// TeamsDoc is teams.yaml.
type TeamsDoc map[string]struct {
	Name            string `yaml:"name"`
	Rookie          bool   `yaml:"rookie"`
	DroppedOutAfter *int   `yaml:"dropped_out_after"`
}

// ScoreDoc is one played match's score artefact, scores/<arena>/<num>.yaml.
type ScoreDoc struct {
	ArenaID     string                    `yaml:"arena_id"`
	MatchNumber int                       `yaml:"match_number"`
	Teams       map[string]map[string]any `yaml:"teams"`
	ArenaZones  map[string]any            `yaml:"arena_zones"`
}

// AwardsDoc is awards.yaml: award name to a TLA or a list of TLAs.
type AwardsDoc map[string]any

// KnockoutDoc is the automatic-scheduler shape of knockout.yaml.
type KnockoutDoc struct {
	RoundSpacing int  `yaml:"round_spacing"`
	FinalDelay   int  `yaml:"final_delay"`
	Arity        *int `yaml:"arity"`
	SingleArena  struct {
		Rounds int      `yaml:"rounds"`
		Arenas []string `yaml:"arenas"`
	} `yaml:"single_arena"`
}

// StaticMatchDoc is one match entry inside static_knockout.matches.
type StaticMatchDoc struct {
	Arena       string    `yaml:"arena"`
	DisplayName string    `yaml:"display_name"`
	StartTime   time.Time `yaml:"start_time"`
	Teams       []*string `yaml:"teams"`
}

// StaticKnockoutDoc is the declarative-bracket shape of knockout.yaml.
// Round and round-match keys are decimal strings; callers sort them
// numerically (yaml.v3 does not preserve mapping key order when decoding
// into a Go map).
type StaticKnockoutDoc struct {
	TeamsPerArena int                                  `yaml:"teams_per_arena"`
	Matches       map[string]map[string]StaticMatchDoc `yaml:"matches"`
}

// LayoutDoc is layout.yaml.
type LayoutDoc struct {
	Teams []struct {
		Name        string   `yaml:"name"`
		DisplayName string   `yaml:"display_name"`
		Description string   `yaml:"description"`
		Teams       []string `yaml:"teams"`
	} `yaml:"teams"`
}

// ShepherdingDoc is shepherding.yaml.
type ShepherdingDoc struct {
	Shepherds []struct {
		Name    string   `yaml:"name"`
		Colour  string   `yaml:"colour"`
		Regions []string `yaml:"regions"`
	} `yaml:"shepherds"`
}

// OperationsDoc is operations.yaml.
type OperationsDoc struct {
	Operations struct {
		ReleaseThreshold int `yaml:"release_threshold"`
		ResetDuration    int `yaml:"reset_duration"`
		ReleasedMatch    *struct {
			Number int       `yaml:"number"`
			Time   time.Time `yaml:"time"`
		} `yaml:"released_match"`
	} `yaml:"operations"`
}

// ArenasDoc is arenas.yaml.
type ArenasDoc struct {
	Arenas map[string]struct {
		DisplayName string `yaml:"display_name"`
	} `yaml:"arenas"`
	Corners map[int]struct {
		Colour string `yaml:"colour"`
	} `yaml:"corners"`
}

// AwardTLAs normalises an AwardsDoc value (a bare string or a list of
// strings in YAML) into a slice of TLA strings.
func AwardTLAs(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
