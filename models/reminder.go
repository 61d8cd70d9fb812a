package models

import "time"

// ReminderPayload is the queued payload for a booking reminder task.
type ReminderPayload struct {
	BookingID   string    `json:"bookingId"`
	TherapistID string    `json:"therapistId"`
	ClientID    string    `json:"clientId"`
	StartTime   time.Time `json:"startTime"`
	MeetingURL  string    `json:"meetingUrl,omitempty"`
}
