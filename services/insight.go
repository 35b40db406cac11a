package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dayflow/domain"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const insightFallback = "Welcome back to Dayflow! Have a productive day ahead."

const insightTimeout = 5 * time.Second

// InsightService wraps the text-summary provider. Provider failures never
// reach the caller; every path returns a usable string.
type InsightService struct {
	client *openai.Client
	model  string
}

func NewInsightService(apiKey, model string) *InsightService {
	s := &InsightService{model: model}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// DailySummary asks the provider for a short daily insight for the user.
// With no API key configured, or on any provider error, the static
// fallback is returned.
func (s *InsightService) DailySummary(ctx context.Context, name string, role domain.Role, data map[string]interface{}) string {
	if s.client == nil {
		return insightFallback
	}

	ctx, cancel := context.WithTimeout(ctx, insightTimeout)
	defer cancel()

	payload, err := json.Marshal(data)
	if err != nil {
		logrus.WithError(err).Warn("Insight context marshal failed")
		return insightFallback
	}

	prompt := fmt.Sprintf(
		"As an HR Assistant AI for Dayflow, provide a brief, professional daily insight for %s (%s).\n"+
			"Context Data: %s\n"+
			"Focus on highlighting important reminders, productivity tips, or policy snippets.\n"+
			"Keep it under 3 sentences. Professional and encouraging.",
		name, role, payload,
	)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: 150,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		logrus.WithError(err).Warn("Insight provider call failed")
		return insightFallback
	}
	if len(resp.Choices) == 0 {
		return insightFallback
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return insightFallback
	}
	return text
}
