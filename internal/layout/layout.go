// Package layout resolves and validates the venue layout: which teams sit
// in which physical region, and which shepherd covers which regions.
package layout

import (
	"fmt"
	"sort"

	"github.com/cliffdoyle/srcomp-engine/internal/compio"
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

// Region is one named grouping of teams in the venue (a pit row, a queuing
// lane, whatever layout.yaml's author chose to call it).
type Region struct {
	Name        string
	DisplayName string
	Description string
	Teams       []matchperiod.TLA
}

// Shepherd is one named shepherding role, covering a set of regions.
type Shepherd struct {
	Name    string
	Colour  string
	Regions []string
}

// Layout is the venue's resolved region/shepherd structure.
type Layout struct {
	Regions   []Region
	Shepherds []Shepherd
}

// InvalidRegionError is returned when a shepherd names a region that
// layout.yaml never defines.
type InvalidRegionError struct {
	Shepherd string
	Region   string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("shepherd %q covers unknown region %q", e.Shepherd, e.Region)
}

// LayoutTeamsError is returned when layout.yaml's regions don't list every
// roster team exactly once.
type LayoutTeamsError struct {
	MultiplyListed []matchperiod.TLA
	NotListed      []matchperiod.TLA
}

func (e *LayoutTeamsError) Error() string {
	return fmt.Sprintf("layout teams inconsistent: multiply listed %v, not listed %v", e.MultiplyListed, e.NotListed)
}

// ShepherdingAreasError is returned when the shepherds' combined regions
// don't exactly cover every region layout.yaml defines once each.
type ShepherdingAreasError struct {
	Missing []string
	Extra   []string
}

func (e *ShepherdingAreasError) Error() string {
	return fmt.Sprintf("shepherding areas inconsistent: uncovered %v, double-covered %v", e.Missing, e.Extra)
}

// Build validates layoutDoc and shepherdingDoc against roster and returns
// the resolved Layout, or the first structural problem found.
func Build(layoutDoc compio.LayoutDoc, shepherdingDoc compio.ShepherdingDoc, roster map[matchperiod.TLA]teams.Team) (*Layout, error) {
	regions := make([]Region, len(layoutDoc.Teams))
	regionNames := make(map[string]bool, len(layoutDoc.Teams))
	teamCount := make(map[matchperiod.TLA]int, len(roster))

	for i, r := range layoutDoc.Teams {
		tlas := make([]matchperiod.TLA, len(r.Teams))
		for j, t := range r.Teams {
			tla := matchperiod.TLA(t)
			tlas[j] = tla
			teamCount[tla]++
		}
		regions[i] = Region{Name: r.Name, DisplayName: r.DisplayName, Description: r.Description, Teams: tlas}
		regionNames[r.Name] = true
	}

	var multiply, notListed []matchperiod.TLA
	for tla := range roster {
		switch teamCount[tla] {
		case 0:
			notListed = append(notListed, tla)
		case 1:
		default:
			multiply = append(multiply, tla)
		}
	}
	if len(multiply) > 0 || len(notListed) > 0 {
		sort.Slice(multiply, func(i, j int) bool { return multiply[i] < multiply[j] })
		sort.Slice(notListed, func(i, j int) bool { return notListed[i] < notListed[j] })
		return nil, &LayoutTeamsError{MultiplyListed: multiply, NotListed: notListed}
	}

	shepherds := make([]Shepherd, len(shepherdingDoc.Shepherds))
	covered := make(map[string]int, len(regionNames))
	for i, s := range shepherdingDoc.Shepherds {
		shepherds[i] = Shepherd{Name: s.Name, Colour: s.Colour, Regions: s.Regions}
		for _, r := range s.Regions {
			if !regionNames[r] {
				return nil, &InvalidRegionError{Shepherd: s.Name, Region: r}
			}
			covered[r]++
		}
	}

	var missing, extra []string
	for name := range regionNames {
		switch covered[name] {
		case 0:
			missing = append(missing, name)
		case 1:
		default:
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return nil, &ShepherdingAreasError{Missing: missing, Extra: extra}
	}

	return &Layout{Regions: regions, Shepherds: shepherds}, nil
}
