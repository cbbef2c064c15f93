package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	adkrunner "google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	defaultAppName = "plant-weather"
	defaultUserID  = "gardener"
)

// RunInput defines the parameters for a single assistant turn.
type RunInput struct {
	AppName string
	UserID  string
	Agent   agent.Agent
	Prompt  string
	OnEvent func(*session.Event)
}

// Run sends Prompt to the agent in a fresh session and returns the text of
// the last model response.
func Run(ctx context.Context, input RunInput) (string, error) {
	if input.Agent == nil {
		return "", fmt.Errorf("agent is required")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return "", errors.New("prompt is required")
	}

	appName := input.AppName
	if appName == "" {
		appName = defaultAppName
	}
	userID := input.UserID
	if userID == "" {
		userID = defaultUserID
	}

	sessionService := session.InMemoryService()
	r, err := adkrunner.New(adkrunner.Config{
		AppName:        appName,
		Agent:          input.Agent,
		SessionService: sessionService,
	})
	if err != nil {
		return "", fmt.Errorf("create ADK runner: %w", err)
	}

	created, err := sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("create ADK session: %w", err)
	}

	var answer string
	msg := genai.NewContentFromText(input.Prompt, genai.RoleUser)
	for ev, runErr := range r.Run(ctx, userID, created.Session.ID(), msg, agent.RunConfig{}) {
		if runErr != nil {
			return "", runErr
		}
		if ev == nil {
			continue
		}
		if input.OnEvent != nil {
			input.OnEvent(ev)
		}
		if text := eventText(ev); text != "" {
			answer = text
		}
	}

	if answer == "" {
		return "", errors.New("assistant returned no answer")
	}
	return answer, nil
}

// eventText joins the text parts of a non-partial model event.
func eventText(ev *session.Event) string {
	if ev.Partial || ev.Content == nil || ev.Content.Role == string(genai.RoleUser) {
		return ""
	}
	var parts []string
	for _, p := range ev.Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			parts = append(parts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
