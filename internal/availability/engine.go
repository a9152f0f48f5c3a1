// Package availability computes slot occupancy and booking conflicts.
// All functions are pure: callers resolve the relevant schedule entries and
// bookings first (catalog for the weekday's classes, repository for the
// date's bookings) and this package only applies the overlap rules.
package availability

import (
	"github.com/openedu/crooms/internal/models"
)

// SlotStatus reports the occupancy of a single grid slot. When the slot is
// occupied by an exact-match class or booking, that occupant is attached for
// display; a partial overlap leaves both occupant fields nil.
type SlotStatus struct {
	Slot     models.TimeSlot       `json:"slot"`
	Occupied bool                  `json:"occupied"`
	Class    *models.ScheduleEntry `json:"class,omitempty"`
	Booking  *models.Booking       `json:"booking,omitempty"`
}

// overlaps applies the half-open interval test to two "HH:MM" ranges.
// Touching endpoints do not overlap, so back-to-back bookings are legal.
// Zero-padded clock strings compare lexically in chronological order.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// Compute determines the occupancy of each slot in the fixed grid, given a
// room's recurring classes for the weekday and its bookings for the exact
// date. Bookings that are not approved never occupy a slot, even when held
// by the querying user. The result has one entry per input slot, in the
// same order.
func Compute(entries []models.ScheduleEntry, bookings []models.Booking, slots []models.TimeSlot) []SlotStatus {
	statuses := make([]SlotStatus, 0, len(slots))

	for _, slot := range slots {
		status := SlotStatus{Slot: slot}

		for i := range entries {
			if overlaps(slot.Start, slot.End, entries[i].StartTime, entries[i].EndTime) {
				status.Occupied = true

				// Prefer the class that matches the slot exactly for display
				if entries[i].StartTime == slot.Start && entries[i].EndTime == slot.End {
					status.Class = &entries[i]
					break
				}
			}
		}

		for i := range bookings {
			if !bookings[i].IsApproved() {
				continue
			}
			if overlaps(slot.Start, slot.End, bookings[i].StartTime, bookings[i].EndTime) {
				status.Occupied = true

				if status.Class == nil && bookings[i].StartTime == slot.Start && bookings[i].EndTime == slot.End {
					status.Booking = &bookings[i]
					break
				}
			}
		}

		statuses = append(statuses, status)
	}

	return statuses
}

// IsRangeBookable reports whether the proposed [start, end) range can be
// booked without conflicting with a recurring class or an approved booking.
// Inverted and zero-length ranges are never bookable. This is the gate the
// create-booking flow calls before inserting a new booking.
func IsRangeBookable(start, end string, entries []models.ScheduleEntry, bookings []models.Booking) bool {
	if start >= end {
		return false
	}

	for _, e := range entries {
		if overlaps(start, end, e.StartTime, e.EndTime) {
			return false
		}
	}

	for i := range bookings {
		if !bookings[i].IsApproved() {
			continue
		}
		if overlaps(start, end, bookings[i].StartTime, bookings[i].EndTime) {
			return false
		}
	}

	return true
}
