package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lanspeech/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiGenerator implements TextGenerator against the Gemini API with a
// bounded completion length.
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(300)
	model.SetTemperature(0.7)
	return &GeminiGenerator{model: model}, nil
}

// sessionModel derives a per-call model carrying the session's directive. One
// generator is shared across all user engines, so the shared model is never
// mutated; concurrent sessions each chat against their own copy.
func (g *GeminiGenerator) sessionModel(systemDirective string) genai.GenerativeModel {
	model := *g.model
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemDirective)},
	}
	return model
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemDirective string, history []models.ConversationTurn, userInput string) (string, error) {
	model := g.sessionModel(systemDirective)
	chat := model.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	// The opening call carries no user turn; the directive itself prompts the
	// greeting.
	input := userInput
	if input == "" {
		input = systemDirective
	}

	resp, err := chat.SendMessage(ctx, genai.Text(input))
	if err != nil {
		if isRateLimited(err) {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// isRateLimited distinguishes quota exhaustion from other provider failures.
func isRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota")
}
