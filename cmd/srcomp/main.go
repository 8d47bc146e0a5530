package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine outside local development.
		slog.Debug("no .env file loaded", "error", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("run_id", uuid.NewString())

	root := &cobra.Command{
		Use:   "srcomp",
		Short: "Query a robotics competition state directory",
	}
	root.AddCommand(newValidateCmd(logger))
	root.AddCommand(newScheduleCmd(logger))
	root.AddCommand(newAwardCmd(logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
