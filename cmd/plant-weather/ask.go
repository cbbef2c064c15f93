package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/adk/session"

	"github.com/i474232898/plant-weather/internal/agents"
	"github.com/i474232898/plant-weather/internal/config"
	"github.com/i474232898/plant-weather/internal/logging"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "ask <question>",
		Short:        "Ask the plant care assistant a question",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := cmd.Context()
			llm, err := agents.NewGeminiModel(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
			if err != nil {
				return err
			}

			tools := agents.NewToolset(newService(cfg), logging.Component("agents"))
			manager, err := agents.NewManager(llm, tools)
			if err != nil {
				return err
			}

			answer, err := agents.Run(ctx, agents.RunInput{
				Agent:  manager,
				Prompt: strings.Join(args, " "),
				OnEvent: func(ev *session.Event) {
					log.Debug().Str("author", ev.Author).Bool("partial", ev.Partial).Msg("agent event")
				},
			})
			if err != nil {
				return fmt.Errorf("assistant: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}
}
