package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/plant-weather/internal/config"
	"github.com/i474232898/plant-weather/internal/plants"
	"github.com/i474232898/plant-weather/internal/weather"
)

func careCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "care <plant> <city> [country-code]",
		Short:        "Print care instructions for a plant based on the current weather",
		Args:         cobra.RangeArgs(2, 3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			plant := args[0]
			city, country := locationArgs(args[1:])

			w, res := newService(cfg).Report(cmd.Context(), weather.Location{City: city, Country: country})
			if !res.OK() {
				return fmt.Errorf("weather lookup failed: %s", res.ErrorMessage)
			}

			care := plants.GenerateCareInstructionsWithWeather(plant, res.Report, w)
			if care.Status != weather.StatusSuccess {
				return fmt.Errorf("%s", care.ErrorMessage)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), care.Instructions)
			return err
		},
	}
}
