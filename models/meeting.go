package models

import "time"

// MeetingDetails is the meeting artifact created once per confirmed booking.
// Immutable after creation.
type MeetingDetails struct {
	MeetingID    string    `json:"meetingId"`
	MeetingURL   string    `json:"meetingUrl"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Participants []string  `json:"participants"`
	HostEmail    string    `json:"hostEmail"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
}

// MeetingCreationRequest defines the payload for provisioning a meeting.
type MeetingCreationRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	StartTime      time.Time `json:"startTime"`
	Duration       int       `json:"duration"` // minutes
	AttendeeEmails []string  `json:"attendeeEmails"`
	HostEmail      string    `json:"hostEmail"`
}
