package booking_sessions

import (
	"github.com/m04kA/SMC-SalonBooking/internal/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// EventRequest HTTP request model события мастера
type EventRequest struct {
	Type string `json:"type"`

	Category     string            `json:"category,omitempty"`
	Zones        []string          `json:"zones,omitempty"`
	GroupChoices map[string]string `json:"groupChoices,omitempty"`
	Extras       []string          `json:"extras,omitempty"`

	Date      string `json:"date,omitempty"`
	StartTime string `json:"startTime,omitempty"`

	ClientName   string `json:"clientName,omitempty"`
	ClientHandle string `json:"clientHandle,omitempty"`
	ClientEmail  string `json:"clientEmail,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID              string   `json:"id"`
	State           string   `json:"state"`
	Category        string   `json:"category,omitempty"`
	Zones           []string `json:"zones,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Price           int      `json:"price,omitempty"`
	Date            string   `json:"date,omitempty"`
	StartTime       string   `json:"startTime,omitempty"`
	ClientName      string   `json:"clientName,omitempty"`
	AppointmentID   string   `json:"appointmentId,omitempty"`
	Slots           []string `json:"slots,omitempty"`
}

// ToEvent конвертирует HTTP запрос в событие мастера
func (r *EventRequest) ToEvent() booking.Event {
	return booking.Event{
		Type:         booking.EventType(r.Type),
		Category:     r.Category,
		Zones:        r.Zones,
		GroupChoices: r.GroupChoices,
		Extras:       r.Extras,
		Date:         r.Date,
		StartTime:    r.StartTime,
		ClientName:   r.ClientName,
		ClientHandle: r.ClientHandle,
		ClientEmail:  r.ClientEmail,
		Notes:        r.Notes,
	}
}

// FromView конвертирует состояние мастера в HTTP response
func FromView(v *booking.View) *SessionResponse {
	s := v.Session
	resp := &SessionResponse{
		ID:              s.ID,
		State:           string(s.State),
		Category:        s.Category,
		Zones:           s.Zones,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		StartTime:       s.StartTime,
		ClientName:      s.ClientName,
		AppointmentID:   s.AppointmentID,
		Slots:           v.Slots,
	}
	if !s.Date.IsZero() {
		resp.Date = s.Date.Format(domain.DateFormat)
	}
	if s.State == booking.StatePickTime && resp.Slots == nil {
		resp.Slots = []string{}
	}
	return resp
}
