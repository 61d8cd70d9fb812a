package scheduling

import (
	"context"
	"fmt"
	"time"

	"lanspeech/models"
	"lanspeech/utils"

	"go.uber.org/zap"
)

// GetTherapistAvailability produces one DayAvailability per weekday in
// [startDate, endDate]. Weekends are excluded at the day level; no slots exist
// outside the configured working windows.
func (s *DefaultCalendarService) GetTherapistAvailability(
	ctx context.Context,
	therapistID string,
	startDate, endDate time.Time,
) ([]models.DayAvailability, error) {
	var availability []models.DayAvailability

	day := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	for !day.After(endDate) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			slots, err := s.generateDaySlots(ctx, day, therapistID)
			if err != nil {
				return nil, fmt.Errorf("generate slots for %s: %w", day.Format("2006-01-02"), err)
			}
			availability = append(availability, models.DayAvailability{
				TherapistID: therapistID,
				Date:        day.Format("2006-01-02"),
				TimeSlots:   slots,
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	return availability, nil
}

// generateDaySlots emits one 1-hour slot per hour boundary within each working
// window. Availability comes from the ledger when one is injected; otherwise
// each slot is free with probability AvailabilityRate and unavailable slots
// carry a synthetic booking ID.
func (s *DefaultCalendarService) generateDaySlots(ctx context.Context, day time.Time, therapistID string) ([]models.TimeSlot, error) {
	logger := utils.GetLogger()
	var slots []models.TimeSlot

	for _, window := range s.WorkingHours {
		for hour := window.StartHour; hour < window.EndHour; hour++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			end := start.Add(time.Hour)

			var booked bool
			var bookingID string
			if s.Ledger != nil {
				var err error
				booked, err = s.Ledger.IsBooked(ctx, therapistID, start, end)
				if err != nil {
					logger.Error("ledger lookup failed, treating slot as available",
						zap.String("therapistID", therapistID), zap.Time("start", start), zap.Error(err))
					booked = false
				}
				if booked {
					bookingID = "reserved"
				}
			} else {
				booked = s.Rand.Float64() >= s.AvailabilityRate
				if booked {
					bookingID = syntheticBookingID(s.Now(), s.Rand)
				}
			}

			slots = append(slots, models.TimeSlot{
				Start:     start,
				End:       end,
				Available: !booked,
				BookingID: bookingID,
			})
		}
	}

	return slots, nil
}

// AvailableSlots filters a day's slots down to the bookable ones. Returns nil
// when the availability record does not match the requested date.
func (s *DefaultCalendarService) AvailableSlots(day models.DayAvailability, date string) []models.TimeSlot {
	if day.Date != date {
		return nil
	}
	var free []models.TimeSlot
	for _, slot := range day.TimeSlots {
		if slot.Available {
			free = append(free, slot)
		}
	}
	return free
}

// FormatTimeSlot renders a slot for display, e.g. "9:00 AM - 10:00 AM".
func FormatTimeSlot(slot models.TimeSlot) string {
	return slot.Start.Format("3:04 PM") + " - " + slot.End.Format("3:04 PM")
}
