package booking

import "time"

// Session контекст мастера записи одного посетителя
type Session struct {
	ID    string
	State State

	Category        string
	Zones           []string
	DurationMinutes int
	Price           int

	Date      time.Time // нулевое значение, пока дата не выбрана
	StartTime string

	ClientName   string
	ClientHandle string
	ClientEmail  string
	Notes        string

	AppointmentID string

	UpdatedAt time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, State: StatePickService, UpdatedAt: now}
}

// clone копия сессии, чтобы изменения не попадали в хранилище до Save
func (s *Session) clone() *Session {
	cp := *s
	if s.Zones != nil {
		cp.Zones = append([]string(nil), s.Zones...)
	}
	return &cp
}

func (s *Session) clearService() {
	s.Category = ""
	s.Zones = nil
	s.DurationMinutes = 0
	s.Price = 0
}

func (s *Session) clearDate() {
	s.Date = time.Time{}
	s.StartTime = ""
}

func (s *Session) reset() {
	s.clearService()
	s.clearDate()
	s.ClientName = ""
	s.ClientHandle = ""
	s.ClientEmail = ""
	s.Notes = ""
	s.AppointmentID = ""
}
