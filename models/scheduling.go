package models

import "time"

// TimeSlot represents a single one-hour candidate interval on a therapist's calendar.
// Invariant: Start < End. As produced by the generator, exactly one of
// {Available, BookingID != ""} holds.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	BookingID string    `json:"bookingId,omitempty"`
}

// DayAvailability holds one calendar day of slots for a therapist. Slots cover
// the configured working-hour windows only.
type DayAvailability struct {
	TherapistID string     `json:"therapistId"`
	Date        string     `json:"date"` // "2006-01-02"
	TimeSlots   []TimeSlot `json:"timeSlots"`
}

// BookingRequest carries the details of a single booking attempt. It is never
// persisted by the scheduling core itself.
type BookingRequest struct {
	TherapistID      string    `json:"therapistId"`
	ClientID         string    `json:"clientId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	SessionType      string    `json:"sessionType"`
	Concerns         string    `json:"concerns"`
	PreferredContact string    `json:"preferredContact"` // "video" or "phone"
}

// BookingResult is the terminal outcome of one booking attempt.
type BookingResult struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CancelRequest identifies the booking to cancel. Therapist and interval are
// optional; when supplied alongside a ledger, the reservation they name is
// released so the slot can be rebooked.
type CancelRequest struct {
	BookingID   string    `json:"bookingId"`
	TherapistID string    `json:"therapistId,omitempty"`
	StartTime   time.Time `json:"startTime,omitempty"`
	EndTime     time.Time `json:"endTime,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// RescheduleRequest carries a booking's move to a new interval. TherapistID is
// optional; when supplied alongside a ledger, the new interval is reserved
// atomically before the move succeeds.
type RescheduleRequest struct {
	BookingID   string    `json:"bookingId"`
	TherapistID string    `json:"therapistId,omitempty"`
	NewStart    time.Time `json:"newStartTime"`
	NewEnd      time.Time `json:"newEndTime"`
}

// CancelResult is the outcome of a cancel or reschedule attempt.
type CancelResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CalendarEvent is a scheduled session as surfaced to a user's agenda.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	MeetingURL  string    `json:"meetingUrl,omitempty"`
}
