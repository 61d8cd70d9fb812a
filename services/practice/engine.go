package practice

import (
	"context"

	"lanspeech/models"
	"lanspeech/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession resets the engine, creates a fresh session record and returns
// the opening AI message.
func (e *DefaultEngine) StartSession(ctx context.Context, sessionType, difficulty string) (string, error) {
	e.mu.Lock()
	e.session = &models.PracticeSession{
		ID:         uuid.New().String(),
		Type:       sessionType,
		Difficulty: difficulty,
		StartTime:  e.Now(),
	}
	e.history = nil
	e.mu.Unlock()

	resp := e.generateResponse(ctx, "", true)
	return resp.Message, nil
}

// SendMessage appends the user turn, produces the next AI turn and bounds the
// history to the most recent turns.
func (e *DefaultEngine) SendMessage(ctx context.Context, userMessage string) (*models.AIResponse, error) {
	e.mu.Lock()
	if e.session == nil {
		e.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	e.history = append(e.history, models.ConversationTurn{Role: models.RoleUser, Content: userMessage})
	e.mu.Unlock()

	resp := e.generateResponse(ctx, userMessage, false)

	e.mu.Lock()
	e.history = append(e.history, models.ConversationTurn{Role: models.RoleAssistant, Content: resp.Message})
	// Keep the last 10 exchanges; truncation never reorders remaining turns.
	if len(e.history) > maxHistoryTurns {
		e.history = e.history[len(e.history)-maxHistoryTurns:]
	}
	e.mu.Unlock()

	return resp, nil
}

// EndSession computes the elapsed session time, clears all state and returns
// the summary, or nil when no session was active.
func (e *DefaultEngine) EndSession() *models.SessionSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}

	summary := &models.SessionSummary{
		SessionID: e.session.ID,
		Duration:  e.Now().Sub(e.session.StartTime).Milliseconds(),
	}

	utils.GetLogger().Info("practice session ended",
		zap.String("sessionID", summary.SessionID),
		zap.Int64("durationMs", summary.Duration))

	e.session = nil
	e.history = nil
	return summary
}

// CurrentSession returns a copy of the active session, or nil when idle.
func (e *DefaultEngine) CurrentSession() *models.PracticeSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	session := *e.session
	return &session
}

// historySnapshot copies the current dialogue history for a generation call.
func (e *DefaultEngine) historySnapshot() []models.ConversationTurn {
	e.mu.Lock()
	defer e.mu.Unlock()
	turns := make([]models.ConversationTurn, len(e.history))
	copy(turns, e.history)
	return turns
}
