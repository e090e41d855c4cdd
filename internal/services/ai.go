package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// GeneratedProject is a project draft extracted by the model. Skills are
// free-form names matched against the skill catalogue later.
type GeneratedProject struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	Skills         []string `json:"skills"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey))
}

// NewAIServiceWithConfig allows pointing the client at another endpoint
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// GenerateProjectsFromText extracts intern project drafts from free text
func (s *AIService) GenerateProjectsFromText(ctx context.Context, text string, knownSkills []string) ([]GeneratedProject, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You turn planning notes into intern project drafts.

Known skills: %s

Notes:
%s

Return a JSON array of projects in this shape:
[
  {
    "name": "short project name",
    "description": "what the intern will build",
    "estimated_hours": 12,
    "skills": ["skill names from the known skills list"]
  }
]

Rules:
- Return [] when the notes contain no project
- estimated_hours is a positive number of working hours
- Only use skill names from the known skills list
- Return JSON only, without any explanation`, strings.Join(knownSkills, ", "), text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var projects []GeneratedProject
	if err := json.Unmarshal([]byte(content), &projects); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return projects, nil
}

// models sometimes wrap JSON in a markdown fence
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
