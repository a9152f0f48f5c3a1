package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for times of day
const ClockLayout = "15:04"

// Weekday identifies a day of the week. Values match time.Weekday
// (Sunday == 0) so a calendar date converts without translation.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// String returns the English name of the weekday. Localized day names are a
// presentation concern and never appear in this package.
func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday converts an English day name back into a Weekday
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// WeekdayOf derives the weekday of a calendar date
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// MarshalJSON encodes the weekday as its English name
func (d Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a weekday from its English name
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	day, err := ParseWeekday(name)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// ScheduleEntry represents a recurring weekly class occupying a room.
// It is not tied to a calendar date: the class repeats every week on Day.
// Times are zero-padded "HH:MM" strings, so lexical comparison matches
// chronological comparison. Invariant: StartTime < EndTime.
type ScheduleEntry struct {
	ID         int     `json:"id"`
	RoomID     int     `json:"roomId"`
	Day        Weekday `json:"day"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	CourseName string  `json:"courseName"`
	Instructor string  `json:"instructor"`
}
