package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const productID = "-//smc//salon-booking//ES"

// Entry запись агенды вместе с именем клиента для заголовка события
type Entry struct {
	Appointment *domain.Appointment
	ClientName  string
}

// Encoder пишет агенду в формате iCalendar
type Encoder struct {
	now func() time.Time
}

// NewEncoder создает новый кодировщик календаря
func NewEncoder(now func() time.Time) *Encoder {
	if now == nil {
		now = time.Now
	}
	return &Encoder{now: now}
}

// Encode пишет VCALENDAR с одним VEVENT на запись.
// Записи с некорректным временем пропускаются, возвращается число записанных событий.
func (e *Encoder) Encode(w io.Writer, entries []Entry) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := e.now().UTC()
	written := 0

	for _, entry := range entries {
		event, ok := toEvent(entry, stamp)
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, event)
		written++
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("failed to encode calendar: %w", err)
	}

	return written, nil
}

func toEvent(entry Entry, stamp time.Time) (*ical.Component, bool) {
	a := entry.Appointment
	if a == nil {
		return nil, false
	}

	start, err := a.Start.On(a.Date)
	if err != nil {
		return nil, false
	}
	end, err := a.End.On(a.Date)
	if err != nil {
		return nil, false
	}

	name := entry.ClientName
	if name == "" {
		name = a.ClientID
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, a.ID+"@salon")
	ve.Props.SetText(ical.PropSummary, fmt.Sprintf("%s: %s (%s)", a.Category, a.ZonesDisplay(), name))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	ve.Props.SetText(ical.PropStatus, eventStatus(a.Status))

	if a.Notes != "" {
		ve.Props.SetText(ical.PropDescription, a.Notes)
	}

	return ve, true
}

func eventStatus(s domain.AppointmentStatus) string {
	switch s {
	case domain.StatusCancelled, domain.StatusNoShow:
		return "CANCELLED"
	default:
		return "CONFIRMED"
	}
}
