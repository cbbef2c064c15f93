// Package agents assembles the conversational plant-care assistant: a manager
// agent that delegates to a weather agent and a plant instructions agent.
package agents

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

const (
	WeatherAgentName = "weather_agent"
	PlantAgentName   = "plant_instructions"
	ManagerAgentName = "manager_agent"
)

const (
	weatherInstruction = "You provide current weather conditions for plant care. " +
		"Always call get_weather_for_plants with the city and, when the user gave one, the country code. " +
		"If the tool returns status error, tell the user the error_message and do not invent weather."
	plantInstruction = "You write plant care instructions. " +
		"Call generate_plant_care_instructions with the plant name and the weather report from the conversation. " +
		"If no weather report is available yet, hand the request back so the weather is fetched first."
	managerInstruction = "You help gardeners look after their plants. " +
		"Delegate weather questions to weather_agent and care questions to plant_instructions. " +
		"When the user asks how to care for a plant in a place, get the weather first, then the instructions."
)

var errNoModel = errors.New("model is required")

// NewGeminiModel creates the Gemini model backing the LLM agents.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (model.LLM, error) {
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is required for the assistant")
	}
	m, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini model: %w", err)
	}
	return m, nil
}

// NewManager builds the manager agent with its two sub-agents.
func NewManager(llm model.LLM, tools *Toolset) (agent.Agent, error) {
	if llm == nil {
		return nil, errNoModel
	}

	weatherTool, err := tools.WeatherTool()
	if err != nil {
		return nil, err
	}
	careTool, err := tools.CareTool()
	if err != nil {
		return nil, err
	}

	weatherAgent, err := llmagent.New(llmagent.Config{
		Name:        WeatherAgentName,
		Model:       llm,
		Description: "Fetches current weather conditions relevant to plant care for a city.",
		Instruction: weatherInstruction,
		Tools:       []tool.Tool{weatherTool},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", WeatherAgentName, err)
	}

	plantAgent, err := llmagent.New(llmagent.Config{
		Name:        PlantAgentName,
		Model:       llm,
		Description: "Generates care instructions for a plant from a weather report.",
		Instruction: plantInstruction,
		Tools:       []tool.Tool{careTool},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", PlantAgentName, err)
	}

	manager, err := llmagent.New(llmagent.Config{
		Name:        ManagerAgentName,
		Model:       llm,
		Description: "Routes gardening questions to the weather and plant care agents.",
		Instruction: managerInstruction,
		SubAgents:   []agent.Agent{weatherAgent, plantAgent},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", ManagerAgentName, err)
	}
	return manager, nil
}
