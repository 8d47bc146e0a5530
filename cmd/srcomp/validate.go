package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cliffdoyle/srcomp-engine/internal/validate"
)

func newValidateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Build a competition state and report any problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadCompState(logger, args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}

			findings := validate.Check(cs, nowFunc())
			for _, f := range findings {
				fmt.Fprintln(os.Stderr, f.String())
			}
			if len(findings) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
}
