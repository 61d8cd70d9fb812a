package handlers

import (
	"net/http"
	"time"

	"lanspeech/models"
	"lanspeech/services/meeting"
	"lanspeech/services/scheduling"
	"lanspeech/services/tasks"
	"lanspeech/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingHandler exposes therapist availability and the booking lifecycle.
// A confirmed booking gets a meeting provisioned and a reminder queued.
type BookingHandler struct {
	Calendar scheduling.CalendarService
	Meetings meeting.MeetingService
	Queue    *asynq.Client // nil disables reminders
}

func NewBookingHandler(calendar scheduling.CalendarService, meetings meeting.MeetingService, queue *asynq.Client) *BookingHandler {
	return &BookingHandler{Calendar: calendar, Meetings: meetings, Queue: queue}
}

// GetAvailabilityHandler returns day-by-day slots for a therapist over a date
// range (defaults to the next 7 days).
func (h *BookingHandler) GetAvailabilityHandler(c *gin.Context) {
	therapistID := c.Param("therapistID")

	start := time.Now()
	end := start.AddDate(0, 0, 7)
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid start date", err.Error())
			return
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid end date", err.Error())
			return
		}
		end = parsed
	}

	availability, err := h.Calendar.GetTherapistAvailability(c.Request.Context(), therapistID, start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

type bookRequest struct {
	TherapistID      string    `json:"therapistId" binding:"required"`
	ClientID         string    `json:"clientId" binding:"required"`
	StartTime        time.Time `json:"startTime" binding:"required"`
	EndTime          time.Time `json:"endTime" binding:"required"`
	SessionType      string    `json:"sessionType"`
	Concerns         string    `json:"concerns"`
	PreferredContact string    `json:"preferredContact"`
	TherapistEmail   string    `json:"therapistEmail"`
	ClientEmail      string    `json:"clientEmail"`
}

// BookHandler commits a booking and, on success, provisions the meeting and
// schedules a reminder one hour before the session.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result := h.Calendar.BookTimeSlot(c.Request.Context(), models.BookingRequest{
		TherapistID:      req.TherapistID,
		ClientID:         req.ClientID,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		SessionType:      req.SessionType,
		Concerns:         req.Concerns,
		PreferredContact: req.PreferredContact,
	})
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}

	duration := int(req.EndTime.Sub(req.StartTime).Minutes())
	meetingDetails := h.Meetings.CreateMeeting(models.MeetingCreationRequest{
		Title:          "Speech Therapy Session",
		Description:    req.Concerns,
		StartTime:      req.StartTime,
		Duration:       duration,
		AttendeeEmails: []string{req.ClientEmail},
		HostEmail:      req.TherapistEmail,
	})
	invite := h.Meetings.GenerateCalendarInvite(meetingDetails)

	h.scheduleReminder(result.BookingID, req, meetingDetails.MeetingURL)

	c.JSON(http.StatusOK, gin.H{
		"booking":        result,
		"meeting":        meetingDetails,
		"calendarInvite": invite,
	})
}

func (h *BookingHandler) scheduleReminder(bookingID string, req bookRequest, meetingURL string) {
	if h.Queue == nil {
		return
	}

	fireAt := req.StartTime.Add(-1 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		BookingID:   bookingID,
		TherapistID: req.TherapistID,
		ClientID:    req.ClientID,
		StartTime:   req.StartTime,
		MeetingURL:  meetingURL,
	}, fireAt)
	if err != nil {
		utils.GetLogger().Error("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := h.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue reminder",
			zap.String("bookingID", bookingID), zap.Error(err))
	}
}

type cancelRequest struct {
	Reason      string    `json:"reason"`
	TherapistID string    `json:"therapistId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// CancelHandler cancels a booking. Clients that include the therapist and the
// booked interval get the slot released for rebooking.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	result := h.Calendar.CancelBooking(c.Request.Context(), models.CancelRequest{
		BookingID:   bookingID,
		TherapistID: req.TherapistID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      req.Reason,
	})
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type rescheduleRequest struct {
	TherapistID  string    `json:"therapistId"`
	NewStartTime time.Time `json:"newStartTime" binding:"required"`
	NewEndTime   time.Time `json:"newEndTime" binding:"required"`
}

// RescheduleHandler moves a booking to a new slot.
func (h *BookingHandler) RescheduleHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result := h.Calendar.RescheduleBooking(c.Request.Context(), models.RescheduleRequest{
		BookingID:   bookingID,
		TherapistID: req.TherapistID,
		NewStart:    req.NewStartTime,
		NewEnd:      req.NewEndTime,
	})
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
