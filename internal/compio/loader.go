package compio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads path and decodes it into T, wrapping any I/O or
// unmarshalling error with the path so the offending file is always
// identifiable.
func LoadYAML[T any](path string) (T, error) {
	var doc T

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func LoadSchedule(path string) (ScheduleDoc, error)         { return LoadYAML[ScheduleDoc](path) }
func LoadLeague(path string) (LeagueDoc, error)              { return LoadYAML[LeagueDoc](path) }
func LoadTeams(path string) (TeamsDoc, error)                { return LoadYAML[TeamsDoc](path) }
func LoadScore(path string) (ScoreDoc, error)                { return LoadYAML[ScoreDoc](path) }
func LoadAwards(path string) (AwardsDoc, error)              { return LoadYAML[AwardsDoc](path) }
func LoadKnockout(path string) (KnockoutDoc, error)          { return LoadYAML[KnockoutDoc](path) }
func LoadStaticKnockout(path string) (StaticKnockoutDoc, error) {
	return LoadYAML[StaticKnockoutDoc](path)
}
func LoadLayout(path string) (LayoutDoc, error)           { return LoadYAML[LayoutDoc](path) }
func LoadShepherding(path string) (ShepherdingDoc, error) { return LoadYAML[ShepherdingDoc](path) }
func LoadOperations(path string) (OperationsDoc, error)   { return LoadYAML[OperationsDoc](path) }
func LoadArenas(path string) (ArenasDoc, error)           { return LoadYAML[ArenasDoc](path) }
