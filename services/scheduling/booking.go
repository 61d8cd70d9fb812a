package scheduling

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"lanspeech/database/repository/ledger"
	"lanspeech/models"
	"lanspeech/utils"

	"go.uber.org/zap"
)

const bookingIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// syntheticBookingID builds a globally-unique booking identifier from a
// time-based prefix and a random suffix.
func syntheticBookingID(now time.Time, rng *rand.Rand) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = bookingIDAlphabet[rng.Intn(len(bookingIDAlphabet))]
	}
	return "booking_" + now.UTC().Format("20060102150405.000") + "_" + string(suffix)
}

// BookTimeSlot validates and commits one booking attempt. Failures are
// reported as result values, never as errors across this boundary.
func (s *DefaultCalendarService) BookTimeSlot(ctx context.Context, req models.BookingRequest) models.BookingResult {
	logger := utils.GetLogger()

	if req.StartTime.Before(s.Now()) {
		return models.BookingResult{
			Success: false,
			Error:   "Cannot book sessions in the past",
		}
	}

	bookingID := syntheticBookingID(s.Now(), s.Rand)

	// With a ledger injected the reserve is an atomic check-and-set, so two
	// concurrent attempts on the same slot cannot both succeed.
	if s.Ledger != nil {
		err := s.Ledger.Reserve(ctx, req.TherapistID, req.StartTime, req.EndTime, bookingID)
		if errors.Is(err, ledger.ErrSlotTaken) {
			return models.BookingResult{
				Success: false,
				Error:   "This time slot is no longer available",
			}
		}
		if err != nil {
			logger.Error("ledger reserve failed",
				zap.String("therapistID", req.TherapistID), zap.Error(err))
			return models.BookingResult{
				Success: false,
				Error:   "Booking failed",
			}
		}
	}

	logger.Info("booking confirmed",
		zap.String("bookingID", bookingID),
		zap.String("therapistID", req.TherapistID),
		zap.String("clientID", req.ClientID),
		zap.Time("start", req.StartTime))

	return models.BookingResult{
		Success:   true,
		BookingID: bookingID,
	}
}

// CancelBooking releases a booking. When the request names the therapist and
// interval and a ledger is present, the reservation is released so the slot
// becomes bookable again; otherwise the cancellation succeeds unconditionally.
func (s *DefaultCalendarService) CancelBooking(ctx context.Context, req models.CancelRequest) models.CancelResult {
	logger := utils.GetLogger()

	if s.Ledger != nil && req.TherapistID != "" && !req.StartTime.IsZero() {
		if err := s.Ledger.Release(ctx, req.TherapistID, req.StartTime, req.EndTime); err != nil {
			logger.Error("ledger release failed",
				zap.String("bookingID", req.BookingID),
				zap.String("therapistID", req.TherapistID), zap.Error(err))
			return models.CancelResult{
				Success: false,
				Error:   "Cancellation failed",
			}
		}
	}

	logger.Info("booking cancelled",
		zap.String("bookingID", req.BookingID), zap.String("reason", req.Reason))
	return models.CancelResult{Success: true}
}

// RescheduleBooking moves a booking to a new interval. The new start must not
// be in the past, and when the request names the therapist and a ledger is
// present, the new interval must reserve atomically. Releasing the old
// interval needs a booking lookup, which belongs to the external persistence
// layer; callers that know it can cancel against it explicitly.
func (s *DefaultCalendarService) RescheduleBooking(ctx context.Context, req models.RescheduleRequest) models.CancelResult {
	if req.NewStart.Before(s.Now()) {
		return models.CancelResult{
			Success: false,
			Error:   "Cannot reschedule to a past time",
		}
	}

	if s.Ledger != nil && req.TherapistID != "" {
		err := s.Ledger.Reserve(ctx, req.TherapistID, req.NewStart, req.NewEnd, req.BookingID)
		if errors.Is(err, ledger.ErrSlotTaken) {
			return models.CancelResult{
				Success: false,
				Error:   "This time slot is no longer available",
			}
		}
		if err != nil {
			utils.GetLogger().Error("ledger reserve failed",
				zap.String("bookingID", req.BookingID),
				zap.String("therapistID", req.TherapistID), zap.Error(err))
			return models.CancelResult{
				Success: false,
				Error:   "Reschedule failed",
			}
		}
	}

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingID", req.BookingID), zap.Time("newStart", req.NewStart))
	return models.CancelResult{Success: true}
}
