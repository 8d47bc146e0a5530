package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

func newScheduleCmd(logger *slog.Logger) *cobra.Command {
	var arena string
	var at string

	cmd := &cobra.Command{
		Use:   "schedule <path>",
		Short: "Print the match schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadCompState(logger, args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}

			matches := cs.Schedule.AllMatches()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				matches = cs.Schedule.MatchesAt(t)
			}

			for _, m := range matches {
				if arena != "" && string(m.Arena) != arena {
					continue
				}
				fmt.Printf("%-20s %-6s %4d  %s\n", m.StartTime.Format(time.RFC3339), m.Arena, m.Num, displayTeams(m))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&arena, "arena", "", "limit output to one arena")
	cmd.Flags().StringVar(&at, "at", "", "limit output to matches active at this RFC3339 instant")
	return cmd
}

func displayTeams(m *matchperiod.Match) string {
	out := ""
	for i, t := range m.Teams {
		if i > 0 {
			out += " "
		}
		if t == nil {
			out += "-"
		} else {
			out += string(*t)
		}
	}
	return out
}
