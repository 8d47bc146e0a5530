package main

import (
	"fmt"
	"log/slog"

	"github.com/cliffdoyle/srcomp-engine/internal/engine"
)

// loadCompState builds the resolved competition view at path, the shared
// setup every subcommand needs before it can do anything useful.
func loadCompState(logger *slog.Logger, path string) (*engine.CompState, error) {
	logger.Info("loading competition state", "path", path)

	cs, err := engine.Load(path, defaultScorerFactory)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	logger.Info("loaded competition state",
		"teams", len(cs.Teams),
		"matches", len(cs.Schedule.AllMatches()),
		"revision", cs.GitState.Revision,
	)
	return cs, nil
}
