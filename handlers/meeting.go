package handlers

import (
	"net/http"

	"lanspeech/models"
	"lanspeech/services/meeting"
	"lanspeech/utils"

	"github.com/gin-gonic/gin"
)

// MeetingHandler exposes meeting provisioning and URL validation.
type MeetingHandler struct {
	Meetings meeting.MeetingService
}

func NewMeetingHandler(meetings meeting.MeetingService) *MeetingHandler {
	return &MeetingHandler{Meetings: meetings}
}

// CreateMeetingHandler provisions a meeting and its calendar invite link.
func (h *MeetingHandler) CreateMeetingHandler(c *gin.Context) {
	var req models.MeetingCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.Title == "" || req.Duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "title and a positive duration are required")
		return
	}

	meetingDetails := h.Meetings.CreateMeeting(req)
	c.JSON(http.StatusOK, gin.H{
		"meeting":        meetingDetails,
		"calendarInvite": h.Meetings.GenerateCalendarInvite(meetingDetails),
	})
}

// GetMeetingHandler looks up a meeting; storage lives in the persistence
// layer, so an unknown ID is the norm here.
func (h *MeetingHandler) GetMeetingHandler(c *gin.Context) {
	meetingID := c.Param("meetingID")
	m := h.Meetings.GetMeeting(meetingID)
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// ValidateMeetingURLHandler checks a meeting URL and extracts its ID.
func (h *MeetingHandler) ValidateMeetingURLHandler(c *gin.Context) {
	u := c.Query("url")
	if u == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "url query parameter is required")
		return
	}

	valid := h.Meetings.IsValidMeetURL(u)
	resp := gin.H{"valid": valid}
	if id := h.Meetings.ExtractMeetingID(u); id != "" {
		resp["meetingId"] = id
	}
	c.JSON(http.StatusOK, resp)
}
