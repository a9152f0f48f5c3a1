package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/openedu/crooms/internal/availability"
	"github.com/openedu/crooms/internal/catalog"
	"github.com/openedu/crooms/internal/models"
	"github.com/openedu/crooms/internal/repository"
	"github.com/openedu/crooms/internal/utils"
)

// BookingUpdateCallback is a function type for booking update callbacks
type BookingUpdateCallback func(*models.Booking)

// BookingService provides the create/list/approve/cancel flows for bookings.
// Creation runs the availability gate first: the conflict check and the
// insert are sequential, not atomic, so two concurrent callers can both pass
// the check. Serializing that pair is a deployment concern, not this
// service's.
type BookingService struct {
	catalog         *catalog.Catalog
	repo            repository.Repository
	updateCallbacks []BookingUpdateCallback
}

// NewBookingService creates a new BookingService over the given catalog and store
func NewBookingService(cat *catalog.Catalog, repo repository.Repository) *BookingService {
	return &BookingService{
		catalog:         cat,
		repo:            repo,
		updateCallbacks: make([]BookingUpdateCallback, 0),
	}
}

// RegisterUpdateCallback registers a callback to be called when a booking changes
func (s *BookingService) RegisterUpdateCallback(callback BookingUpdateCallback) {
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

// notifyUpdate calls all registered callbacks with the changed booking
func (s *BookingService) notifyUpdate(booking *models.Booking) {
	for _, callback := range s.updateCallbacks {
		callback(booking)
	}
}

// CreateBooking validates the request, checks the range against the room's
// weekly schedule and approved bookings, and persists a new pending booking.
// The caller's user id is always passed in explicitly.
func (s *BookingService) CreateBooking(ctx context.Context, roomID, userID int, date, startTime, endTime, purpose string) (*models.Booking, error) {
	day, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	if err := validateClockTime("startTime", startTime); err != nil {
		return nil, err
	}
	if err := validateClockTime("endTime", endTime); err != nil {
		return nil, err
	}
	if startTime >= endTime {
		return nil, &ValidationError{Field: "endTime", Message: "must be after startTime"}
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, &ValidationError{Field: "purpose", Message: "must not be empty"}
	}

	if _, err := s.catalog.GetRoom(roomID); err != nil {
		return nil, err
	}

	// The availability gate: recurring classes for this weekday plus
	// approved bookings for this exact date.
	entries := s.catalog.ScheduleFor(roomID, day)
	approved, err := s.repo.ListApprovedBookingsByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	if !availability.IsRangeBookable(startTime, endTime, entries, deref(approved)) {
		return nil, ErrTimeConflict
	}

	booking := &models.Booking{
		RoomID:    roomID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Purpose:   purpose,
		Status:    models.BookingStatusPending,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	log.Printf("Created booking %d for room %d on %s (%s)",
		booking.ID, roomID, date, utils.SanitizeLogString(purpose))

	s.notifyUpdate(booking)
	return booking, nil
}

// ListUserBookings returns the user's bookings, optionally filtered to a
// single status for the dashboard tabs. Pass statusFilter == "" for all.
func (s *BookingService) ListUserBookings(ctx context.Context, userID int, statusFilter string) ([]*models.Booking, error) {
	bookings, err := s.repo.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if statusFilter == "" {
		return bookings, nil
	}

	status, err := models.ParseBookingStatus(statusFilter)
	if err != nil {
		return nil, &ValidationError{Field: "status", Message: err.Error()}
	}

	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// ListRoomBookings returns every booking for a room on a date, all statuses
func (s *BookingService) ListRoomBookings(ctx context.Context, roomID int, date string) ([]*models.Booking, error) {
	if _, err := validateDate(date); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetRoom(roomID); err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByRoomAndDate(ctx, roomID, date)
}

// GetBooking retrieves a single booking by id
func (s *BookingService) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

// UpdateBookingStatus applies an approval-process decision to a booking and
// notifies listeners so availability views refresh
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) (*models.Booking, error) {
	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyUpdate(booking)
	return booking, nil
}

// CancelBooking removes a booking. Only the owner may cancel, and only while
// the booking has not been approved.
func (s *BookingService) CancelBooking(ctx context.Context, id, userID int) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}
	if booking.Status == models.BookingStatusApproved {
		return ErrCancelApproved
	}

	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.notifyUpdate(booking)
	return nil
}

// validateDate checks the wire date format and returns its weekday
func validateDate(date string) (models.Weekday, error) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil || len(date) != len(models.DateLayout) {
		return 0, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	return models.WeekdayOf(t), nil
}

// validateClockTime checks the wire time-of-day format. The length check
// rejects unpadded values like "9:30" that time.Parse would accept but that
// break lexical time comparison.
func validateClockTime(field, value string) error {
	if _, err := time.Parse(models.ClockLayout, value); err != nil || len(value) != len(models.ClockLayout) {
		return &ValidationError{Field: field, Message: "must be HH:MM"}
	}
	return nil
}

// deref converts the repository's pointer slices into the value slices the
// availability engine takes
func deref(bookings []*models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *b)
	}
	return out
}
