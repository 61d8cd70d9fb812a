package handlers

import (
	"net/http"
	"sync"

	"lanspeech/database/repository/practicestore"
	"lanspeech/models"
	"lanspeech/services/practice"
	"lanspeech/services/session"
	"lanspeech/services/speech"
	"lanspeech/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PracticeHandler exposes the AI practice session lifecycle. One controller
// (and one engine) exists per user; the engine allows a single active session.
type PracticeHandler struct {
	NewEngine     func() practice.Engine
	NewRecognizer func() speech.Recognizer
	Synthesizer   speech.Synthesizer
	SummaryStore  *practicestore.RedisSummaryStore

	controllers sync.Map // userID -> *session.Controller
	recognizers sync.Map // userID -> speech.Recognizer
}

func NewPracticeHandler(
	newEngine func() practice.Engine,
	newRecognizer func() speech.Recognizer,
	synth speech.Synthesizer,
	store *practicestore.RedisSummaryStore,
) *PracticeHandler {
	return &PracticeHandler{
		NewEngine:     newEngine,
		NewRecognizer: newRecognizer,
		Synthesizer:   synth,
		SummaryStore:  store,
	}
}

func (h *PracticeHandler) controllerFor(userID string) *session.Controller {
	if ctrl, ok := h.controllers.Load(userID); ok {
		return ctrl.(*session.Controller)
	}
	var recognizer speech.Recognizer
	if h.NewRecognizer != nil {
		recognizer = h.NewRecognizer()
	}
	ctrl := session.NewController(h.NewEngine(), recognizer, h.Synthesizer)
	actual, loaded := h.controllers.LoadOrStore(userID, ctrl)
	if !loaded && recognizer != nil {
		h.recognizers.Store(userID, recognizer)
	}
	return actual.(*session.Controller)
}

type startSessionRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

func validSessionType(t string) bool {
	switch t {
	case models.SessionConversation, models.SessionPresentation, models.SessionInterview, models.SessionPhoneCall:
		return true
	}
	return false
}

func validDifficulty(d string) bool {
	switch d {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	}
	return false
}

// StartSessionHandler starts a practice session and returns the opening state.
func (h *PracticeHandler) StartSessionHandler(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !validSessionType(req.Type) {
		utils.JSONError(c, http.StatusBadRequest, "invalid session type", req.Type)
		return
	}
	if !validDifficulty(req.Difficulty) {
		utils.JSONError(c, http.StatusBadRequest, "invalid difficulty", req.Difficulty)
		return
	}

	ctrl := h.controllerFor(req.UserID)
	if err := ctrl.StartSession(c.Request.Context(), req.Type, req.Difficulty); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}

type sendMessageRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendMessageHandler forwards one user turn and returns the updated state.
func (h *PracticeHandler) SendMessageHandler(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctrl := h.controllerFor(req.UserID)
	if err := ctrl.SendMessage(c.Request.Context(), req.Message); err != nil {
		utils.JSONError(c, http.StatusConflict, "failed to send message", err.Error())
		return
	}

	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// GetStateHandler returns the current UI-facing session state.
func (h *PracticeHandler) GetStateHandler(c *gin.Context) {
	userID := c.Param("userID")
	ctrl := h.controllerFor(userID)
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// StartListeningHandler begins speech capture for the user's session.
func (h *PracticeHandler) StartListeningHandler(c *gin.Context) {
	userID := c.Param("userID")
	ctrl := h.controllerFor(userID)
	ctrl.StartListening(c.Request.Context())
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// StopListeningHandler stops capture; a buffered transcript is submitted.
func (h *PracticeHandler) StopListeningHandler(c *gin.Context) {
	userID := c.Param("userID")
	ctrl := h.controllerFor(userID)
	ctrl.StopListening(c.Request.Context())
	c.JSON(http.StatusOK, ctrl.Snapshot())
}

// EndSessionHandler ends the session and persists the summary.
func (h *PracticeHandler) EndSessionHandler(c *gin.Context) {
	userID := c.Param("userID")
	ctrl := h.controllerFor(userID)

	summary := ctrl.EndSession()
	if summary == nil {
		c.JSON(http.StatusOK, gin.H{"ended": false})
		return
	}

	if h.SummaryStore != nil {
		if err := h.SummaryStore.Save(c.Request.Context(), userID, *summary); err != nil {
			utils.GetLogger().Error("failed to persist session summary",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"ended": true, "summary": summary})
}

// ListSummariesHandler returns the user's stored practice summaries.
func (h *PracticeHandler) ListSummariesHandler(c *gin.Context) {
	userID := c.Param("userID")
	if h.SummaryStore == nil {
		c.JSON(http.StatusOK, gin.H{"summaries": []models.SessionSummary{}})
		return
	}
	summaries, err := h.SummaryStore.List(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load summaries", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}
