package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"lanspeech/models"
	"lanspeech/services/practice"
	"lanspeech/services/speech"
	"lanspeech/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller binds the practice engine to the speech I/O provider and owns
// the UI-facing session state: messages, loading/listening flags and the last
// user-visible error. All of that state is derived, never authoritative.
type Controller struct {
	engine      practice.Engine
	recognizer  speech.Recognizer
	synthesizer speech.Synthesizer

	mu         sync.Mutex
	messages   []models.Message
	session    *models.PracticeSession
	transcript string
	listening  bool
	loading    bool
	errMsg     string
}

// State is a snapshot of the controller's UI-facing state.
type State struct {
	Messages    []models.Message        `json:"messages"`
	Session     *models.PracticeSession `json:"session,omitempty"`
	IsLoading   bool                    `json:"isLoading"`
	IsListening bool                    `json:"isListening"`
	Error       string                  `json:"error,omitempty"`
}

func NewController(engine practice.Engine, recognizer speech.Recognizer, synthesizer speech.Synthesizer) *Controller {
	return &Controller{
		engine:      engine,
		recognizer:  recognizer,
		synthesizer: synthesizer,
	}
}

func (c *Controller) appendMessage(msgType, content string, feedback *models.Feedback) models.Message {
	msg := models.Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Content:   content,
		Timestamp: time.Now(),
		Feedback:  feedback,
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg
}

// speak forwards text to the synthesizer. A synthesis failure is logged and
// swallowed; the session continues.
func (c *Controller) speak(ctx context.Context, text string) {
	if c.synthesizer == nil {
		return
	}
	if err := c.synthesizer.Speak(ctx, speech.SynthesisRequest{Text: text}); err != nil {
		utils.GetLogger().Warn("could not speak message", zap.Error(err))
	}
}

// StartSession clears prior state, starts an engine session and appends (and
// speaks) the opening AI message.
func (c *Controller) StartSession(ctx context.Context, sessionType, difficulty string) error {
	c.mu.Lock()
	c.messages = nil
	c.errMsg = ""
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	initialMessage, err := c.engine.StartSession(ctx, sessionType, difficulty)
	if err != nil {
		c.setError(err.Error())
		return err
	}

	c.mu.Lock()
	c.session = c.engine.CurrentSession()
	c.mu.Unlock()

	c.appendMessage("ai", initialMessage, nil)
	c.speak(ctx, initialMessage)
	return nil
}

// SendMessage forwards one user turn to the engine and appends the AI reply.
// Blank input or a missing session is a no-op; a send already in flight is
// rejected rather than interleaved.
func (c *Controller) SendMessage(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	c.mu.Lock()
	if c.session == nil || c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	c.appendMessage("user", content, nil)

	resp, err := c.engine.SendMessage(ctx, content)
	if err != nil {
		c.setError(err.Error())
		return err
	}

	c.appendMessage("ai", resp.Message, resp.Feedback)
	c.speak(ctx, resp.Message)
	return nil
}

// HandleSpeechResult processes one recognition event: interim results update
// the transcript buffer, a final non-empty result behaves like pressing send.
func (c *Controller) HandleSpeechResult(ctx context.Context, result speech.RecognitionResult) {
	c.mu.Lock()
	c.transcript = result.Transcript
	c.mu.Unlock()

	if result.IsFinal && strings.TrimSpace(result.Transcript) != "" {
		transcript := result.Transcript
		c.mu.Lock()
		c.transcript = ""
		c.mu.Unlock()
		if err := c.SendMessage(ctx, transcript); err != nil {
			utils.GetLogger().Warn("failed to send recognized speech", zap.Error(err))
		}
	}
}

func (c *Controller) handleSpeechError(errMsg string) {
	c.mu.Lock()
	c.errMsg = errMsg
	c.listening = false
	c.mu.Unlock()
}

// StartListening begins speech capture. An unsupported provider surfaces an
// error and leaves the listening state unchanged.
func (c *Controller) StartListening(ctx context.Context) {
	if c.recognizer == nil || !c.recognizer.IsSupported() {
		c.setError("Speech recognition is not supported")
		return
	}

	started := c.recognizer.StartListening(
		func(result speech.RecognitionResult) { c.HandleSpeechResult(ctx, result) },
		c.handleSpeechError,
	)

	if started {
		c.mu.Lock()
		c.listening = true
		c.errMsg = ""
		c.mu.Unlock()
	}
}

// StopListening halts capture. A manually-stopped listen with a non-empty
// transcript buffer is treated as an implicit submit.
func (c *Controller) StopListening(ctx context.Context) {
	if c.recognizer != nil {
		c.recognizer.StopListening()
	}

	c.mu.Lock()
	c.listening = false
	pending := c.transcript
	c.transcript = ""
	c.mu.Unlock()

	if strings.TrimSpace(pending) != "" {
		if err := c.SendMessage(ctx, pending); err != nil {
			utils.GetLogger().Warn("failed to send buffered transcript", zap.Error(err))
		}
	}
}

// EndSession stops any active listening, ends the engine session and clears
// all UI-facing state unconditionally.
func (c *Controller) EndSession() *models.SessionSummary {
	if c.recognizer != nil {
		c.recognizer.StopListening()
	}

	summary := c.engine.EndSession()

	c.mu.Lock()
	c.session = nil
	c.messages = nil
	c.listening = false
	c.transcript = ""
	c.errMsg = ""
	c.mu.Unlock()

	return summary
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

// ClearError drops the last user-visible error.
func (c *Controller) ClearError() {
	c.setError("")
}

// Snapshot returns a copy of the current UI-facing state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]models.Message, len(c.messages))
	copy(messages, c.messages)

	var session *models.PracticeSession
	if c.session != nil {
		s := *c.session
		session = &s
	}

	return State{
		Messages:    messages,
		Session:     session,
		IsLoading:   c.loading,
		IsListening: c.listening,
		Error:       c.errMsg,
	}
}
