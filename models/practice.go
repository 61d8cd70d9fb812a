package models

import "time"

// Practice session types.
const (
	SessionConversation = "conversation"
	SessionPresentation = "presentation"
	SessionInterview    = "interview"
	SessionPhoneCall    = "phone_call"
)

// Practice difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// PracticeSession is one continuous AI-guided practice interaction, distinct
// from a booked therapy session.
type PracticeSession struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Difficulty string    `json:"difficulty"`
	Duration   int64     `json:"duration"` // milliseconds, filled on end
	StartTime  time.Time `json:"startTime"`
}

// Conversation turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a practice dialogue.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Feedback is the supportive feedback attached to an AI reply. The pools it
// draws from are fixed; it is a placeholder for real speech analysis.
type Feedback struct {
	Encouragement string   `json:"encouragement"`
	Suggestions   []string `json:"suggestions"`
	Strengths     []string `json:"strengths"`
}

// AIResponse is one generated assistant turn plus its feedback.
type AIResponse struct {
	Message    string    `json:"message"`
	Feedback   *Feedback `json:"feedback,omitempty"`
	NextPrompt string    `json:"nextPrompt,omitempty"`
}

// Message is the UI-facing record of one turn, user or AI.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "user" or "ai"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Feedback  *Feedback `json:"feedback,omitempty"`
}

// SessionSummary is returned when a practice session ends.
type SessionSummary struct {
	SessionID string `json:"sessionId"`
	Duration  int64  `json:"duration"` // milliseconds
}
