package validator

import (
	"fmt"
	"time"

	"claresys/pkg/model"
)

// Booking start/end instants must fall inside the business window:
// 07:00 up to 20:00, where 20:00 itself is the last valid instant.
const (
	BusinessOpenHour  = 7
	BusinessCloseHour = 20
)

// Draft is one in-progress booking request, owned by a single form session.
type Draft struct {
	ClassroomID string `validate:"required"`
	Date        time.Time
	StartHour   int `validate:"min=0,max=23"`
	StartMinute int `validate:"min=0,max=59"`
	EndHour     int `validate:"min=0,max=23"`
	EndMinute   int `validate:"min=0,max=59"`
	Subject     string
}

// IsWeekday reports whether the draft date falls Monday through Friday.
// The date is pinned to local midnight first so the weekday cannot shift
// across a timezone conversion.
func IsWeekday(date time.Time) bool {
	day := atMidnight(date).Weekday()
	return day != time.Saturday && day != time.Sunday
}

// IsWithinBusinessWindow reports whether a wall-clock instant may be used as
// a booking boundary. Hour 20 is only valid at minute 0 exactly.
func IsWithinBusinessWindow(hour, minute int) bool {
	if minute < 0 || minute > 59 {
		return false
	}
	if hour < BusinessOpenHour || hour > BusinessCloseHour {
		return false
	}
	if hour == BusinessCloseHour && minute != 0 {
		return false
	}
	return true
}

// IsOrdered reports whether the end instant strictly follows the start
// instant on the same date. Zero-length bookings are rejected.
func IsOrdered(date time.Time, startHour, startMinute, endHour, endMinute int) bool {
	start := compose(date, startHour, startMinute)
	end := compose(date, endHour, endMinute)
	return end.After(start)
}

// CanSubmit is the single gate consulted before a submission goes on the
// wire. It must be re-derived from the current draft on every field change.
func CanSubmit(d Draft, catalog []model.Classroom) bool {
	if d.ClassroomID == "" || !catalogContains(catalog, d.ClassroomID) {
		return false
	}
	if !IsWeekday(d.Date) {
		return false
	}
	if !IsWithinBusinessWindow(d.StartHour, d.StartMinute) {
		return false
	}
	if !IsWithinBusinessWindow(d.EndHour, d.EndMinute) {
		return false
	}
	return IsOrdered(d.Date, d.StartHour, d.StartMinute, d.EndHour, d.EndMinute)
}

// CanonicalTimestamp renders the exact wire format the booking collaborator
// expects: YYYY-MM-DDTHH:MM:00, zero-padded, seconds forced to 00, no UTC
// offset. The backend reads this as naive local time; appending a zone
// changes booking semantics.
func CanonicalTimestamp(date time.Time, hour, minute int) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00",
		date.Year(), int(date.Month()), date.Day(), hour, minute)
}

// StartTimestamp and EndTimestamp derive the wire values for a draft.
func (d Draft) StartTimestamp() string {
	return CanonicalTimestamp(d.Date, d.StartHour, d.StartMinute)
}

func (d Draft) EndTimestamp() string {
	return CanonicalTimestamp(d.Date, d.EndHour, d.EndMinute)
}

func atMidnight(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

func compose(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func catalogContains(catalog []model.Classroom, id string) bool {
	for _, room := range catalog {
		if room.ID == id {
			return true
		}
	}
	return false
}
