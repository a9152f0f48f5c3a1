// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openedu/crooms/internal/models"
)

// ErrNotFound is returned when a requested booking is not found
var ErrNotFound = models.ErrBookingNotFound

// Repository implements the repository interface with in-memory storage
type Repository struct {
	bookings map[int]models.Booking
	nextID   int
	mu       sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		bookings: make(map[int]models.Booking),
		nextID:   1,
	}
}

// CreateBooking stores a new booking and assigns its id
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = r.nextID
	r.nextID++

	// Store a copy so later caller mutations don't leak into the store
	r.bookings[booking.ID] = *booking

	return nil
}

// GetBooking retrieves a booking by id
func (r *Repository) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &booking, nil
}

// ListBookingsByUser returns all bookings created by the user, in creation order
func (r *Repository) ListBookingsByUser(ctx context.Context, userID int) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(b models.Booking) bool {
		return b.UserID == userID
	}), nil
}

// ListBookingsByRoomAndDate returns every booking for the room on the exact
// date, regardless of status
func (r *Repository) ListBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(b models.Booking) bool {
		return b.RoomID == roomID && b.Date == date
	}), nil
}

// ListApprovedBookingsByRoomAndDate returns only approved bookings for the
// room on the exact date. These are the bookings that block new ones.
func (r *Repository) ListApprovedBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(b models.Booking) bool {
		return b.RoomID == roomID && b.Date == date && b.Status == models.BookingStatusApproved
	}), nil
}

// collect returns copies of all bookings matching the predicate, ordered by
// id. Callers must hold at least a read lock.
func (r *Repository) collect(match func(models.Booking) bool) []*models.Booking {
	result := make([]*models.Booking, 0)
	for _, booking := range r.bookings {
		if match(booking) {
			b := booking
			result = append(result, &b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// UpdateBookingStatus changes the approval state of a booking
func (r *Repository) UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}

	booking.Status = status
	r.bookings[id] = booking

	return nil
}

// DeleteBooking removes a booking by id
func (r *Repository) DeleteBooking(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}

	delete(r.bookings, id)

	return nil
}
