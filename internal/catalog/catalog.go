// Package catalog owns the room list and the recurring weekly class
// schedule. The catalog is read-only after construction so it can be shared
// between handlers without locking.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/openedu/crooms/internal/models"
)

// ErrRoomNotFound is returned when a room id is not in the catalog
var ErrRoomNotFound = errors.New("room not found")

// Catalog holds rooms and their weekly schedules
type Catalog struct {
	rooms     []models.Room
	roomsByID map[int]models.Room
	schedule  []models.ScheduleEntry
}

// New builds a catalog from seed data. Every schedule entry must reference a
// known room and satisfy StartTime < EndTime; seeding with broken references
// is a data-integrity error, not something the catalog papers over.
func New(rooms []models.Room, schedule []models.ScheduleEntry) (*Catalog, error) {
	byID := make(map[int]models.Room, len(rooms))
	for _, room := range rooms {
		if _, exists := byID[room.ID]; exists {
			return nil, fmt.Errorf("duplicate room id %d", room.ID)
		}
		byID[room.ID] = room
	}

	for _, entry := range schedule {
		if _, ok := byID[entry.RoomID]; !ok {
			return nil, fmt.Errorf("schedule entry %d references unknown room %d", entry.ID, entry.RoomID)
		}
		if entry.StartTime >= entry.EndTime {
			return nil, fmt.Errorf("schedule entry %d has inverted time range %s-%s", entry.ID, entry.StartTime, entry.EndTime)
		}
	}

	// Keep entries ordered by start time so per-day lookups come out sorted
	sorted := make([]models.ScheduleEntry, len(schedule))
	copy(sorted, schedule)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	return &Catalog{
		rooms:     append([]models.Room(nil), rooms...),
		roomsByID: byID,
		schedule:  sorted,
	}, nil
}

// ListRooms returns all rooms in creation order
func (c *Catalog) ListRooms() []models.Room {
	out := make([]models.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// GetRoom retrieves a room by id
func (c *Catalog) GetRoom(id int) (models.Room, error) {
	room, ok := c.roomsByID[id]
	if !ok {
		return models.Room{}, ErrRoomNotFound
	}
	return room, nil
}

// ScheduleFor returns the recurring classes occupying a room on the given
// weekday, ordered by start time
func (c *Catalog) ScheduleFor(roomID int, day models.Weekday) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0)
	for _, entry := range c.schedule {
		if entry.RoomID == roomID && entry.Day == day {
			entries = append(entries, entry)
		}
	}
	return entries
}
