package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newAwardCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "award <path>",
		Short: "Print the computed awards as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := loadCompState(logger, args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}

			out := make(map[string][]string, len(cs.Awards))
			for name, tlas := range cs.Awards {
				list := make([]string, len(tlas))
				for i, t := range tlas {
					list[i] = string(t)
				}
				out[name] = list
			}

			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}
