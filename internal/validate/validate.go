// Package validate walks a built competition state and reports soft
// problems: conditions the engine can live with but an operator should
// know about. Nothing here is fatal — construction-time errors belong to
// the component that detected them (§7), not here.
package validate

import (
	"fmt"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/engine"
	"github.com/cliffdoyle/srcomp-engine/internal/matchops"
)

// Finding is one non-fatal problem surfaced by Check.
type Finding struct {
	Message string
}

func (f Finding) String() string { return f.Message }

// Check inspects cs and returns every finding, in no particular priority
// order. An empty result means the competition state looks healthy.
func Check(cs *engine.CompState, now time.Time) []Finding {
	var findings []Finding

	findings = append(findings, checkHeldMatches(cs, now)...)
	findings = append(findings, checkTeamsWithNoLeagueMatches(cs)...)
	findings = append(findings, checkOverlappingSchedule(cs)...)
	findings = append(findings, checkLayout(cs)...)

	return findings
}

// checkLayout surfaces any structural problem engine.Load found while
// building the venue layout (layout regions not covering all teams,
// shepherds covering an unknown or not-fully-covered set of regions).
func checkLayout(cs *engine.CompState) []Finding {
	if cs.LayoutError == nil {
		return nil
	}
	return []Finding{{Message: fmt.Sprintf("layout/shepherding: %v", cs.LayoutError)}}
}

func checkHeldMatches(cs *engine.CompState, now time.Time) []Finding {
	if cs.Operations == nil {
		return nil
	}
	var findings []Finding
	for _, m := range cs.Schedule.AllMatches() {
		if cs.Operations.GetMatchState(m, now) == matchops.Held {
			findings = append(findings, Finding{
				Message: fmt.Sprintf("match %d (%s) is past its release threshold but has not been released", m.Num, m.DisplayName),
			})
		}
	}
	return findings
}

func checkTeamsWithNoLeagueMatches(cs *engine.CompState) []Finding {
	played := make(map[string]bool)
	for id := range cs.LeagueScores.GamePoints {
		for tla := range cs.LeagueScores.GamePoints[id] {
			played[string(tla)] = true
		}
	}

	var findings []Finding
	for tla := range cs.Teams {
		if !played[string(tla)] {
			findings = append(findings, Finding{Message: fmt.Sprintf("team %s has no scored league matches", tla)})
		}
	}
	return findings
}

func checkOverlappingSchedule(cs *engine.CompState) []Finding {
	var findings []Finding
	for _, period := range cs.Schedule.Periods {
		var prevEnd time.Time
		var prevNum int
		for i, slot := range period.Matches {
			for _, m := range slot {
				if i > 0 && m.StartTime.Before(prevEnd) {
					findings = append(findings, Finding{
						Message: fmt.Sprintf("match %d starts before match %d finishes in period %q", m.Num, prevNum, period.Description),
					})
				}
				if m.EndTime.After(prevEnd) {
					prevEnd = m.EndTime
					prevNum = int(m.Num)
				}
			}
		}
	}
	return findings
}
