package scheduling

import (
	"context"
	"math/rand"
	"time"

	"lanspeech/database/repository/ledger"
	"lanspeech/models"
)

// WorkingWindow is an hour-of-day range during which a therapist takes
// sessions, e.g. {9, 12} for the morning block.
type WorkingWindow struct {
	StartHour int
	EndHour   int
}

// DefaultWorkingHours mirrors the standard therapist day: 9 AM - 12 PM and
// 1 PM - 6 PM.
var DefaultWorkingHours = []WorkingWindow{
	{StartHour: 9, EndHour: 12},
	{StartHour: 13, EndHour: 18},
}

// CalendarService is the single authority for therapist availability and
// booking lifecycle.
type CalendarService interface {
	GetTherapistAvailability(ctx context.Context, therapistID string, startDate, endDate time.Time) ([]models.DayAvailability, error)
	BookTimeSlot(ctx context.Context, req models.BookingRequest) models.BookingResult
	CancelBooking(ctx context.Context, req models.CancelRequest) models.CancelResult
	RescheduleBooking(ctx context.Context, req models.RescheduleRequest) models.CancelResult
	HasConflict(proposed models.TimeSlot, existing []models.TimeSlot) bool
	AvailableSlots(day models.DayAvailability, date string) []models.TimeSlot
}

// DefaultCalendarService implements CalendarService. All collaborators are
// injected: a rand source so tests can fix the seed, a clock so "the past" is
// testable, and an optional BookingLedger. Without a ledger, availability is
// drawn at random (the synthetic-data mode); with one, it is a deterministic
// lookup and bookings reserve atomically.
type DefaultCalendarService struct {
	WorkingHours     []WorkingWindow
	AvailabilityRate float64 // probability a generated slot is free in synthetic mode
	Ledger           ledger.BookingLedger
	Rand             *rand.Rand
	Now              func() time.Time
}

// NewCalendarService builds a service with the default working hours and a
// 70% synthetic availability rate.
func NewCalendarService(lgr ledger.BookingLedger, rng *rand.Rand, now func() time.Time) *DefaultCalendarService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &DefaultCalendarService{
		WorkingHours:     DefaultWorkingHours,
		AvailabilityRate: 0.7,
		Ledger:           lgr,
		Rand:             rng,
		Now:              now,
	}
}
