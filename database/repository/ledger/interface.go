package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrSlotTaken is returned by Reserve when the slot already holds a booking.
var ErrSlotTaken = errors.New("slot already booked")

// BookingLedger answers whether a therapist interval holds a booking and
// reserves intervals atomically. The scheduling engine works without one
// (synthetic availability); injecting a ledger makes slot generation
// deterministic and booking race-safe.
type BookingLedger interface {
	IsBooked(ctx context.Context, therapistID string, start, end time.Time) (bool, error)
	// Reserve performs an atomic check-and-reserve. Returns ErrSlotTaken if a
	// booking already occupies the interval.
	Reserve(ctx context.Context, therapistID string, start, end time.Time, bookingID string) error
	Release(ctx context.Context, therapistID string, start, end time.Time) error
}
