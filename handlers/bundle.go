package handlers

// HandlerBundle gathers the handler groups for route registration.
type HandlerBundle struct {
	Practice *PracticeHandler
	Booking  *BookingHandler
	Meeting  *MeetingHandler
}
