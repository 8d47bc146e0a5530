package scores

import (
	"fmt"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// Scorer is the capability a host application must implement to turn one
// match's raw, game-specific score data into normalised game points. This
// is the Go analogue of the source's dynamically loaded scorer plug-in:
// rather than loading code from a path at runtime, the host injects a
// concrete implementation, checked for capabilities via type assertion.
type Scorer interface {
	CalculateScores() (map[matchperiod.TLA]int, error)
}

// Validator is an optional capability a Scorer may also implement: if it
// does, Validate is called before CalculateScores and any error it returns
// is fatal for that score file.
type Validator interface {
	Validate() error
}

// Factory builds a Scorer for one match's raw team data and optional arena
// data. It is supplied once per resolved view by the host; this package
// never caches a Factory or a Scorer behind a package-level variable, so
// that two resolved views built in the same process never share state.
type Factory func(teamsData map[string]any, arenaData map[string]any) (Scorer, error)

// RawScore is one match's raw score artefact as loaded from a score file.
type RawScore struct {
	ArenaID     matchperiod.ArenaName
	MatchNumber matchperiod.MatchNumber
	TeamsData   map[matchperiod.TLA]map[string]any
	ArenaData   map[string]any
}

// ScorerValidationError wraps a failure returned by a Scorer's Validate
// method.
type ScorerValidationError struct {
	Match matchperiod.MatchNumber
	Err   error
}

func (e *ScorerValidationError) Error() string {
	return fmt.Sprintf("scorer validation failed for match %d: %v", e.Match, e.Err)
}

func (e *ScorerValidationError) Unwrap() error { return e.Err }

// runScorer instantiates a Scorer via factory, runs the optional validation
// hook, and extracts its game points.
func runScorer(factory Factory, raw RawScore) (map[matchperiod.TLA]int, error) {
	teamsAny := make(map[string]any, len(raw.TeamsData))
	for tla, data := range raw.TeamsData {
		teamsAny[string(tla)] = data
	}

	scorer, err := factory(teamsAny, raw.ArenaData)
	if err != nil {
		return nil, err
	}

	if v, ok := scorer.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, &ScorerValidationError{Match: raw.MatchNumber, Err: err}
		}
	}

	return scorer.CalculateScores()
}
