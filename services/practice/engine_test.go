package practice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"lanspeech/models"
)

// fakeGenerator returns canned results and records what it was asked.
type fakeGenerator struct {
	reply         string
	err           error
	lastDirective string
	lastHistory   []models.ConversationTurn
	lastInput     string
	calls         int
}

func (g *fakeGenerator) Generate(_ context.Context, directive string, history []models.ConversationTurn, input string) (string, error) {
	g.calls++
	g.lastDirective = directive
	g.lastHistory = history
	g.lastInput = input
	return g.reply, g.err
}

func testEngine(gen TextGenerator, seed int64, now time.Time) *DefaultEngine {
	return NewEngine(gen, rand.New(rand.NewSource(seed)), func() time.Time { return now })
}

func TestSendMessage_RequiresActiveSession(t *testing.T) {
	engine := testEngine(nil, 1, time.Now())

	if _, err := engine.SendMessage(context.Background(), "hello"); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestStartSession_FallbackWelcome(t *testing.T) {
	engine := testEngine(nil, 1, time.Now())

	msg, err := engine.StartSession(context.Background(), models.SessionPresentation, models.DifficultyBeginner)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if msg != fallbackWelcome {
		t.Fatalf("welcome = %q, want the fallback welcome", msg)
	}

	session := engine.CurrentSession()
	if session == nil {
		t.Fatal("no current session after StartSession")
	}
	if session.Type != models.SessionPresentation || session.Difficulty != models.DifficultyBeginner {
		t.Fatalf("session = %+v", session)
	}
	if session.ID == "" {
		t.Fatal("session id is empty")
	}
}

func TestSendMessage_FallbackContinuationsComeFromPool(t *testing.T) {
	engine := testEngine(nil, 7, time.Now())
	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyIntermediate); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	pool := make(map[string]bool, len(fallbackContinuations))
	for _, c := range fallbackContinuations {
		pool[c] = true
	}

	for i := 0; i < 10; i++ {
		resp, err := engine.SendMessage(context.Background(), "I went hiking today")
		if err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
		if !pool[resp.Message] {
			t.Fatalf("reply %q is not a canned continuation", resp.Message)
		}
		if resp.Feedback == nil {
			t.Fatal("fallback reply missing feedback")
		}
	}
}

func TestSendMessage_HistoryTruncatedToLastTurns(t *testing.T) {
	engine := testEngine(nil, 2, time.Now())
	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyBeginner); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	for i := 0; i < 15; i++ {
		if _, err := engine.SendMessage(context.Background(), fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("SendMessage %d failed: %v", i, err)
		}
	}

	turns := engine.historySnapshot()
	if len(turns) != maxHistoryTurns {
		t.Fatalf("history length = %d, want %d", len(turns), maxHistoryTurns)
	}
	// 15 exchanges produced 30 turns; the kept window starts at exchange 5
	// and alternates user/assistant in original order.
	if turns[0].Role != models.RoleUser || turns[0].Content != "message 5" {
		t.Fatalf("first kept turn = %+v, want user \"message 5\"", turns[0])
	}
	for i, turn := range turns {
		wantRole := models.RoleUser
		if i%2 == 1 {
			wantRole = models.RoleAssistant
		}
		if turn.Role != wantRole {
			t.Fatalf("turn %d role = %q, want %q", i, turn.Role, wantRole)
		}
	}
	if last := turns[len(turns)-2]; last.Content != "message 14" {
		t.Fatalf("latest user turn = %q, want \"message 14\"", last.Content)
	}
}

func TestGeneratorReceivesDirectiveHistoryAndInput(t *testing.T) {
	gen := &fakeGenerator{reply: "Nice to meet you!"}
	engine := testEngine(gen, 3, time.Now())

	if _, err := engine.StartSession(context.Background(), models.SessionInterview, models.DifficultyAdvanced); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("opening call count = %d, want 1", gen.calls)
	}
	if gen.lastDirective != systemDirective(models.SessionInterview, models.DifficultyAdvanced) {
		t.Fatal("opening directive does not match session type and difficulty")
	}
	if len(gen.lastHistory) != 0 {
		t.Fatalf("opening history = %v, want empty", gen.lastHistory)
	}

	resp, err := engine.SendMessage(context.Background(), "Tell me about yourself")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if resp.Message != "Nice to meet you!" {
		t.Fatalf("reply = %q", resp.Message)
	}
	if gen.lastInput != "Tell me about yourself" {
		t.Fatalf("generator input = %q", gen.lastInput)
	}
	// The current input travels separately and must not be duplicated in the
	// history payload.
	for _, turn := range gen.lastHistory {
		if turn.Content == "Tell me about yourself" {
			t.Fatal("current input duplicated in history payload")
		}
	}
	if resp.Feedback == nil || resp.NextPrompt == "" {
		t.Fatalf("successful reply missing feedback or next prompt: %+v", resp)
	}
}

func TestSendMessage_RateLimitedGetsDedicatedReply(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("provider: %w", ErrRateLimited)}
	engine := testEngine(gen, 4, time.Now())

	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyBeginner); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	resp, err := engine.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if resp.Message != rateLimitedMessage {
		t.Fatalf("reply = %q, want the rate-limited message", resp.Message)
	}
	if resp.Feedback == nil || len(resp.Feedback.Suggestions) == 0 {
		t.Fatal("rate-limited reply missing supportive feedback")
	}
}

func TestSendMessage_OtherErrorsFallBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream unavailable")}
	engine := testEngine(gen, 5, time.Now())

	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyBeginner); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	resp, err := engine.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	found := false
	for _, c := range fallbackContinuations {
		if resp.Message == c {
			found = true
		}
	}
	if !found {
		t.Fatalf("reply %q is not a canned continuation", resp.Message)
	}
}

func TestSendMessage_EmptyGenerationGetsApology(t *testing.T) {
	gen := &fakeGenerator{reply: ""}
	engine := testEngine(gen, 6, time.Now())

	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyBeginner); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	resp, err := engine.SendMessage(context.Background(), "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if !strings.Contains(resp.Message, "trouble generating a response") {
		t.Fatalf("reply = %q", resp.Message)
	}
}

func TestEndSession(t *testing.T) {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	current := start
	engine := NewEngine(nil, rand.New(rand.NewSource(8)), func() time.Time { return current })

	if engine.EndSession() != nil {
		t.Fatal("ending with no session should return nil")
	}

	if _, err := engine.StartSession(context.Background(), models.SessionConversation, models.DifficultyBeginner); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	sessionID := engine.CurrentSession().ID

	current = start.Add(90 * time.Second)
	summary := engine.EndSession()
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.SessionID != sessionID {
		t.Fatalf("summary session id = %q, want %q", summary.SessionID, sessionID)
	}
	if summary.Duration != 90_000 {
		t.Fatalf("duration = %d ms, want 90000", summary.Duration)
	}

	if engine.CurrentSession() != nil {
		t.Fatal("session should be cleared after EndSession")
	}
	if len(engine.historySnapshot()) != 0 {
		t.Fatal("history should be cleared after EndSession")
	}

	// The engine is reusable for a fresh session.
	if _, err := engine.StartSession(context.Background(), models.SessionPhoneCall, models.DifficultyAdvanced); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if engine.CurrentSession().ID == sessionID {
		t.Fatal("restarted session reused the old id")
	}
}
