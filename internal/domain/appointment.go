package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Appointment is a booked treatment for one client on one day
type Appointment struct {
	ID                   string
	ClientID             string
	Date                 time.Time
	Start                types.TimeString
	End                  types.TimeString
	Category             string
	Zones                []string
	TotalDurationMinutes int
	Status               AppointmentStatus
	Notes                string
	ReminderSent         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment blocks its time range for new bookings.
// Completed appointments still count: the work really happened.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// IsOn returns true if the appointment is on the same calendar day as date
func (a *Appointment) IsOn(date time.Time) bool {
	return SameDay(a.Date, date)
}

// ZonesDisplay returns the zones joined the way they are persisted
func (a *Appointment) ZonesDisplay() string {
	return JoinZones(a.Zones)
}

// Interval returns the appointment bounds as minutes from midnight.
// ok is false when either bound cannot be parsed.
func (a *Appointment) Interval() (start, end int, ok bool) {
	start, err := a.Start.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = a.End.Minutes()
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// AppointmentsFilter selects appointments for the agenda
type AppointmentsFilter struct {
	From     *time.Time          // inclusive, nil = no lower bound
	To       *time.Time          // inclusive, nil = no upper bound
	Statuses []AppointmentStatus // empty = any status
	ClientID *string
}

// JoinZones builds the display string stored with an appointment
func JoinZones(zones []string) string {
	return strings.Join(zones, ZonesSeparator)
}

// SplitZones parses a persisted zones display string
func SplitZones(s string) []string {
	parts := strings.Split(s, ",")
	zones := make([]string, 0, len(parts))
	for _, p := range parts {
		if z := strings.TrimSpace(p); z != "" {
			zones = append(zones, z)
		}
	}
	return zones
}

// SameDay returns true if both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
