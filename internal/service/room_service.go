package service

import (
	"context"

	"github.com/openedu/crooms/internal/availability"
	"github.com/openedu/crooms/internal/catalog"
	"github.com/openedu/crooms/internal/models"
	"github.com/openedu/crooms/internal/repository"
)

// RoomService answers room and availability queries for the UI
type RoomService struct {
	catalog *catalog.Catalog
	repo    repository.Repository
	slots   []models.TimeSlot
}

// NewRoomService creates a new RoomService with the given catalog and booking store
func NewRoomService(cat *catalog.Catalog, repo repository.Repository) *RoomService {
	return &RoomService{
		catalog: cat,
		repo:    repo,
		slots:   models.DefaultTimeSlots(),
	}
}

// ListRooms returns all rooms in creation order
func (s *RoomService) ListRooms() []models.Room {
	return s.catalog.ListRooms()
}

// GetRoom retrieves a room by id
func (s *RoomService) GetRoom(id int) (models.Room, error) {
	return s.catalog.GetRoom(id)
}

// DaySchedule returns the recurring classes for a room on the weekday the
// given date falls on, ordered by start time
func (s *RoomService) DaySchedule(roomID int, date string) ([]models.ScheduleEntry, error) {
	day, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetRoom(roomID); err != nil {
		return nil, err
	}
	return s.catalog.ScheduleFor(roomID, day), nil
}

// Availability computes the fixed-grid occupancy of a room on a calendar
// date: the weekday's recurring classes intersected with the date's approved
// bookings, one status per grid slot.
func (s *RoomService) Availability(ctx context.Context, roomID int, date string) ([]availability.SlotStatus, error) {
	day, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetRoom(roomID); err != nil {
		return nil, err
	}

	entries := s.catalog.ScheduleFor(roomID, day)
	approved, err := s.repo.ListApprovedBookingsByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	return availability.Compute(entries, deref(approved), s.slots), nil
}
