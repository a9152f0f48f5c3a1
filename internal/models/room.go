package models

// Room represents a bookable university classroom
type Room struct {
	ID         int      `json:"id"`
	RoomNumber string   `json:"roomNumber"`
	Capacity   int      `json:"capacity"`
	Features   []string `json:"features"`
}

// HasFeature returns true if the room is equipped with the named feature
func (r *Room) HasFeature(name string) bool {
	for _, f := range r.Features {
		if f == name {
			return true
		}
	}
	return false
}
