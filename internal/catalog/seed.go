package catalog

import (
	"fmt"

	"github.com/openedu/crooms/internal/models"
)

// Seed returns a catalog populated with the standard campus data: fifteen
// classrooms numbered 201-215 and a weekly schedule of two classes per room
// per teaching day on the fixed slot grid. The data is deterministic so
// repeated startups and tests see the same catalog.
func Seed() (*Catalog, error) {
	slots := models.DefaultTimeSlots()

	rooms := make([]models.Room, 0, 15)
	for i := 0; i < 15; i++ {
		features := []string{"whiteboard"}
		if i%2 == 0 {
			features = append(features, "projector")
		}
		if i%3 == 0 {
			features = append(features, "computers")
		}
		rooms = append(rooms, models.Room{
			ID:         i + 1,
			RoomNumber: fmt.Sprintf("%d", 201+i),
			Capacity:   20 + i,
			Features:   features,
		})
	}

	teachingDays := []models.Weekday{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday,
	}

	var schedule []models.ScheduleEntry
	for _, room := range rooms {
		for d, day := range teachingDays {
			// Two classes per day, rotated through the grid so rooms differ
			for k := 0; k < 2; k++ {
				slot := slots[(room.ID+2*d+3*k)%len(slots)]
				schedule = append(schedule, models.ScheduleEntry{
					ID:         len(schedule) + 1,
					RoomID:     room.ID,
					Day:        day,
					StartTime:  slot.Start,
					EndTime:    slot.End,
					CourseName: fmt.Sprintf("Course %d", (room.ID+d+k)%10+1),
					Instructor: fmt.Sprintf("Professor %c", 'A'+(room.ID+d+k)%26),
				})
			}
		}
	}

	return New(rooms, schedule)
}
