package models

// TimeSlot is one cell of the fixed daily grid at which occupancy is
// reported. The grid is configuration shared by all rooms, not derived data.
type TimeSlot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// DefaultTimeSlots returns the standard six-slot daily grid
func DefaultTimeSlots() []TimeSlot {
	return []TimeSlot{
		{Start: "09:30", End: "10:50"},
		{Start: "11:00", End: "12:20"},
		{Start: "12:30", End: "13:50"},
		{Start: "14:00", End: "15:20"},
		{Start: "15:30", End: "16:50"},
		{Start: "17:00", End: "18:20"},
	}
}
