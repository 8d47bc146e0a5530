package main

import (
	"fmt"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/scores"
)

// defaultScorerFactory is the scorer plug-in every CLI subcommand passes to
// engine.Load (the CLI has no way to select another): it reads a plain
// integer "score" field per team.
// Real competitions supply their own Factory to engine.Load; this exists
// so the CLI has something to run against a bare competition state.
func defaultScorerFactory(teamsData map[string]any, _ map[string]any) (scores.Scorer, error) {
	return defaultScorer{teams: teamsData}, nil
}

type defaultScorer struct {
	teams map[string]any
}

func (s defaultScorer) CalculateScores() (map[matchperiod.TLA]int, error) {
	out := make(map[matchperiod.TLA]int, len(s.teams))
	for tla, data := range s.teams {
		fields, ok := data.(map[string]any)
		if !ok {
			out[matchperiod.TLA(tla)] = 0
			continue
		}
		switch v := fields["score"].(type) {
		case int:
			out[matchperiod.TLA(tla)] = v
		case float64:
			out[matchperiod.TLA(tla)] = int(v)
		case nil:
			out[matchperiod.TLA(tla)] = 0
		default:
			return nil, fmt.Errorf("team %s: score field is not a number", tla)
		}
	}
	return out, nil
}
