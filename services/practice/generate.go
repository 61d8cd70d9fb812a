package practice

import (
	"context"
	"errors"

	"lanspeech/models"
	"lanspeech/utils"

	"go.uber.org/zap"
)

// rateLimitedMessage is the supportive reply used when the provider reports
// quota exhaustion; practice continues on canned material.
const rateLimitedMessage = "I'm currently experiencing high demand and need to take a short break. But don't worry - we can still practice together! I'll provide structured practice exercises and encouragement while we wait for the AI to be available again."

// generateResponse produces the next AI turn. Provider failures never abort
// the exchange: rate limiting gets a dedicated supportive reply, anything else
// degrades to the fallback path.
func (e *DefaultEngine) generateResponse(ctx context.Context, userInput string, isInitial bool) *models.AIResponse {
	session := e.CurrentSession()
	if e.Generator == nil || session == nil {
		return e.fallbackResponse(isInitial)
	}

	directive := systemDirective(session.Type, session.Difficulty)

	turns := e.historySnapshot()
	if !isInitial && len(turns) > 0 {
		// The current user input travels separately; drop its history copy.
		turns = turns[:len(turns)-1]
	}

	message, err := e.Generator.Generate(ctx, directive, turns, userInput)
	if err != nil {
		utils.GetLogger().Error("generation provider error", zap.Error(err))

		if errors.Is(err, ErrRateLimited) {
			return &models.AIResponse{
				Message: rateLimitedMessage,
				Feedback: &models.Feedback{
					Encouragement: "Your dedication to practicing is wonderful, even when facing technical challenges!",
					Suggestions:   []string{"Try the practice exercises below", "Practice speaking aloud to build confidence"},
					Strengths:     []string{"You're persistent and committed", "You're making the effort to practice"},
				},
			}
		}
		return e.fallbackResponse(isInitial)
	}

	if message == "" {
		message = "I apologize, but I had trouble generating a response. Please try again."
	}

	return &models.AIResponse{
		Message:    message,
		Feedback:   e.generateFeedback(),
		NextPrompt: e.nextPrompt(),
	}
}
