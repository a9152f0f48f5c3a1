package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBookingNotFound is returned by booking stores when an id is unknown.
// It lives here so every store implementation shares one sentinel.
var ErrBookingNotFound = errors.New("booking not found")

// BookingStatus represents the approval state of a booking
type BookingStatus int

const (
	BookingStatusPending BookingStatus = iota
	BookingStatusApproved
	BookingStatusRejected
)

// String returns the string representation of a booking status
func (s BookingStatus) String() string {
	return [...]string{"pending", "approved", "rejected"}[s]
}

// ParseBookingStatus converts a wire-format status string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch s {
	case "pending":
		return BookingStatusPending, nil
	case "approved":
		return BookingStatusApproved, nil
	case "rejected":
		return BookingStatusRejected, nil
	}
	return 0, fmt.Errorf("unknown booking status %q", s)
}

// MarshalJSON encodes the status as its wire-format string
func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the status from its wire-format string
func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Booking represents a user-created reservation of a room for a specific
// calendar date and time range. New bookings start out pending; an external
// approval process moves them to approved or rejected. Only approved
// bookings block other bookings.
type Booking struct {
	ID        int           `json:"id"`
	RoomID    int           `json:"roomId"`
	UserID    int           `json:"userId"`
	Date      string        `json:"date"`      // "YYYY-MM-DD"
	StartTime string        `json:"startTime"` // "HH:MM"
	EndTime   string        `json:"endTime"`   // "HH:MM"
	Purpose   string        `json:"purpose"`
	Status    BookingStatus `json:"status"`
}

// IsApproved returns true if the booking has been approved
func (b *Booking) IsApproved() bool {
	return b.Status == BookingStatusApproved
}
