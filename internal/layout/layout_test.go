package layout

import (
	"testing"

	"github.com/cliffdoyle/srcomp-engine/internal/compio"
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
)

func roster(tlas ...string) map[matchperiod.TLA]teams.Team {
	out := make(map[matchperiod.TLA]teams.Team, len(tlas))
	for _, t := range tlas {
		out[matchperiod.TLA(t)] = teams.Team{TLA: matchperiod.TLA(t)}
	}
	return out
}

func regionDoc(regions ...struct {
	name  string
	teams []string
}) compio.LayoutDoc {
	var doc compio.LayoutDoc
	for _, r := range regions {
		doc.Teams = append(doc.Teams, struct {
			Name        string   `yaml:"name"`
			DisplayName string   `yaml:"display_name"`
			Description string   `yaml:"description"`
			Teams       []string `yaml:"teams"`
		}{Name: r.name, Teams: r.teams})
	}
	return doc
}

func TestBuildValidLayout(t *testing.T) {
	doc := regionDoc(
		struct {
			name  string
			teams []string
		}{"north", []string{"AAA", "BBB"}},
		struct {
			name  string
			teams []string
		}{"south", []string{"CCC"}},
	)
	shepherding := compio.ShepherdingDoc{}
	shepherding.Shepherds = append(shepherding.Shepherds, struct {
		Name    string   `yaml:"name"`
		Colour  string   `yaml:"colour"`
		Regions []string `yaml:"regions"`
	}{Name: "Shep1", Regions: []string{"north", "south"}})

	l, err := Build(doc, shepherding, roster("AAA", "BBB", "CCC"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(l.Regions) != 2 || len(l.Shepherds) != 1 {
		t.Errorf("got %d regions, %d shepherds", len(l.Regions), len(l.Shepherds))
	}
}

func TestBuildDetectsUnlistedTeam(t *testing.T) {
	doc := regionDoc(struct {
		name  string
		teams []string
	}{"north", []string{"AAA"}})

	_, err := Build(doc, compio.ShepherdingDoc{}, roster("AAA", "BBB"))
	lerr, ok := err.(*LayoutTeamsError)
	if !ok {
		t.Fatalf("expected LayoutTeamsError, got %v", err)
	}
	if len(lerr.NotListed) != 1 || lerr.NotListed[0] != "BBB" {
		t.Errorf("NotListed = %v", lerr.NotListed)
	}
}

func TestBuildDetectsMultiplyListedTeam(t *testing.T) {
	doc := regionDoc(
		struct {
			name  string
			teams []string
		}{"north", []string{"AAA"}},
		struct {
			name  string
			teams []string
		}{"south", []string{"AAA"}},
	)

	_, err := Build(doc, compio.ShepherdingDoc{}, roster("AAA"))
	lerr, ok := err.(*LayoutTeamsError)
	if !ok {
		t.Fatalf("expected LayoutTeamsError, got %v", err)
	}
	if len(lerr.MultiplyListed) != 1 || lerr.MultiplyListed[0] != "AAA" {
		t.Errorf("MultiplyListed = %v", lerr.MultiplyListed)
	}
}

func TestBuildDetectsUnknownRegion(t *testing.T) {
	doc := regionDoc(struct {
		name  string
		teams []string
	}{"north", []string{"AAA"}})

	shepherding := compio.ShepherdingDoc{}
	shepherding.Shepherds = append(shepherding.Shepherds, struct {
		Name    string   `yaml:"name"`
		Colour  string   `yaml:"colour"`
		Regions []string `yaml:"regions"`
	}{Name: "Shep1", Regions: []string{"nowhere"}})

	_, err := Build(doc, shepherding, roster("AAA"))
	if _, ok := err.(*InvalidRegionError); !ok {
		t.Fatalf("expected InvalidRegionError, got %v", err)
	}
}

func TestBuildDetectsUncoveredRegion(t *testing.T) {
	doc := regionDoc(
		struct {
			name  string
			teams []string
		}{"north", []string{"AAA"}},
		struct {
			name  string
			teams []string
		}{"south", []string{"BBB"}},
	)
	shepherding := compio.ShepherdingDoc{}
	shepherding.Shepherds = append(shepherding.Shepherds, struct {
		Name    string   `yaml:"name"`
		Colour  string   `yaml:"colour"`
		Regions []string `yaml:"regions"`
	}{Name: "Shep1", Regions: []string{"north"}})

	_, err := Build(doc, shepherding, roster("AAA", "BBB"))
	serr, ok := err.(*ShepherdingAreasError)
	if !ok {
		t.Fatalf("expected ShepherdingAreasError, got %v", err)
	}
	if len(serr.Missing) != 1 || serr.Missing[0] != "south" {
		t.Errorf("Missing = %v", serr.Missing)
	}
}
