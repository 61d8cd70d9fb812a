package scheduling

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"lanspeech/models"
)

func futureRequest(now time.Time) models.BookingRequest {
	start := now.Add(24 * time.Hour)
	return models.BookingRequest{
		TherapistID: "t1",
		ClientID:    "c1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestBookTimeSlot_RejectsPast(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := testService(1, now)

	req := models.BookingRequest{
		TherapistID: "t1",
		ClientID:    "c1",
		StartTime:   now.Add(-time.Hour),
		EndTime:     now,
	}

	result := svc.BookTimeSlot(context.Background(), req)
	if result.Success {
		t.Fatal("booking in the past should fail")
	}
	if result.Error != "Cannot book sessions in the past" {
		t.Fatalf("unexpected error message %q", result.Error)
	}
	if result.BookingID != "" {
		t.Fatalf("failed booking should not carry an id, got %q", result.BookingID)
	}
}

func TestBookTimeSlot_FutureSucceedsWithUniqueIDs(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := testService(2, now)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		result := svc.BookTimeSlot(context.Background(), futureRequest(now))
		if !result.Success {
			t.Fatalf("future booking %d failed: %s", i, result.Error)
		}
		if !strings.HasPrefix(result.BookingID, "booking_") {
			t.Fatalf("booking id %q missing prefix", result.BookingID)
		}
		if seen[result.BookingID] {
			t.Fatalf("duplicate booking id %q", result.BookingID)
		}
		seen[result.BookingID] = true
	}
}

func TestBookTimeSlot_LedgerRejectsDoubleBooking(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := NewCalendarService(newFakeLedger(), rand.New(rand.NewSource(3)), fixedClock(now))

	req := futureRequest(now)

	first := svc.BookTimeSlot(context.Background(), req)
	if !first.Success {
		t.Fatalf("first booking failed: %s", first.Error)
	}

	second := svc.BookTimeSlot(context.Background(), req)
	if second.Success {
		t.Fatal("second booking of the same slot should fail")
	}
	if second.Error != "This time slot is no longer available" {
		t.Fatalf("unexpected error message %q", second.Error)
	}

	// A different slot for the same therapist is still bookable.
	other := req
	other.StartTime = req.StartTime.Add(time.Hour)
	other.EndTime = req.EndTime.Add(time.Hour)
	if result := svc.BookTimeSlot(context.Background(), other); !result.Success {
		t.Fatalf("adjacent slot booking failed: %s", result.Error)
	}
}

func TestCancelBooking(t *testing.T) {
	svc := testService(4, time.Now())
	result := svc.CancelBooking(context.Background(), models.CancelRequest{
		BookingID: "booking_x",
		Reason:    "client asked",
	})
	if !result.Success {
		t.Fatalf("cancel failed: %s", result.Error)
	}
}

func TestCancelBooking_ReleasesLedgerReservation(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := NewCalendarService(newFakeLedger(), rand.New(rand.NewSource(6)), fixedClock(now))

	req := futureRequest(now)
	booked := svc.BookTimeSlot(context.Background(), req)
	if !booked.Success {
		t.Fatalf("booking failed: %s", booked.Error)
	}

	cancelled := svc.CancelBooking(context.Background(), models.CancelRequest{
		BookingID:   booked.BookingID,
		TherapistID: req.TherapistID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      "client asked",
	})
	if !cancelled.Success {
		t.Fatalf("cancel failed: %s", cancelled.Error)
	}

	// The slot must be bookable again.
	rebooked := svc.BookTimeSlot(context.Background(), req)
	if !rebooked.Success {
		t.Fatalf("slot still reserved after cancellation: %s", rebooked.Error)
	}
	if rebooked.BookingID == booked.BookingID {
		t.Fatal("rebooked slot reused the cancelled booking id")
	}
}

func TestRescheduleBooking(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := testService(5, now)

	past := svc.RescheduleBooking(context.Background(), models.RescheduleRequest{
		BookingID: "booking_x",
		NewStart:  now.Add(-time.Hour),
		NewEnd:    now,
	})
	if past.Success {
		t.Fatal("rescheduling into the past should fail")
	}
	if past.Error != "Cannot reschedule to a past time" {
		t.Fatalf("unexpected error message %q", past.Error)
	}

	future := svc.RescheduleBooking(context.Background(), models.RescheduleRequest{
		BookingID: "booking_x",
		NewStart:  now.Add(2 * time.Hour),
		NewEnd:    now.Add(3 * time.Hour),
	})
	if !future.Success {
		t.Fatalf("future reschedule failed: %s", future.Error)
	}
}

func TestRescheduleBooking_LedgerRejectsOccupiedInterval(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	lgr := newFakeLedger()
	svc := NewCalendarService(lgr, rand.New(rand.NewSource(7)), fixedClock(now))

	target := now.Add(24 * time.Hour)
	if err := lgr.Reserve(context.Background(), "t1", target, target.Add(time.Hour), "other-booking"); err != nil {
		t.Fatalf("seed reserve failed: %v", err)
	}

	onto := svc.RescheduleBooking(context.Background(), models.RescheduleRequest{
		BookingID:   "booking_x",
		TherapistID: "t1",
		NewStart:    target,
		NewEnd:      target.Add(time.Hour),
	})
	if onto.Success {
		t.Fatal("rescheduling onto a reserved interval should fail")
	}
	if onto.Error != "This time slot is no longer available" {
		t.Fatalf("unexpected error message %q", onto.Error)
	}

	// A free interval reserves and succeeds.
	free := target.Add(2 * time.Hour)
	moved := svc.RescheduleBooking(context.Background(), models.RescheduleRequest{
		BookingID:   "booking_x",
		TherapistID: "t1",
		NewStart:    free,
		NewEnd:      free.Add(time.Hour),
	})
	if !moved.Success {
		t.Fatalf("reschedule to a free interval failed: %s", moved.Error)
	}
	taken, err := lgr.IsBooked(context.Background(), "t1", free, free.Add(time.Hour))
	if err != nil || !taken {
		t.Fatalf("new interval not reserved after reschedule (taken=%v, err=%v)", taken, err)
	}
}
