package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/plant-weather/internal/config"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <city> [country-code]",
		Short: "Print the plant weather report for a city as JSON",
		Long: "Print the plant weather report for a city as JSON.\n" +
			"A failed lookup is reported in the JSON with status \"error\"; the command still exits 0.",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			city, country := locationArgs(args)
			res := newService(cfg).GetWeatherForPlants(cmd.Context(), city, country)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
