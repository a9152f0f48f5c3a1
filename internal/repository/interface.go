// Package repository defines interfaces for booking storage
package repository

import (
	"context"

	"github.com/openedu/crooms/internal/models"
)

// Repository defines the interface for storing and retrieving bookings.
// Implementations assign ids and persist; they never conflict-check. That
// is the service layer's job before calling CreateBooking.
type Repository interface {
	// CreateBooking persists a new booking and assigns its unique id
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int) (*models.Booking, error)

	// Listing operations used by the dashboard and the availability engine
	ListBookingsByUser(ctx context.Context, userID int) ([]*models.Booking, error)
	ListBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error)
	ListApprovedBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error)

	// UpdateBookingStatus is the hook for the external approval process
	UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error
	DeleteBooking(ctx context.Context, id int) error
}
