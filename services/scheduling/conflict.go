package scheduling

import "lanspeech/models"

// HasConflict reports whether the proposed interval overlaps any unavailable
// slot, under half-open [start, end) semantics: two intervals overlap iff
// proposed.Start < existing.End && proposed.End > existing.Start. Slots marked
// available never conflict.
func (s *DefaultCalendarService) HasConflict(proposed models.TimeSlot, existing []models.TimeSlot) bool {
	for _, slot := range existing {
		if slot.Available {
			continue
		}
		if proposed.Start.Before(slot.End) && proposed.End.After(slot.Start) {
			return true
		}
	}
	return false
}
