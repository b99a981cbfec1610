package domain

import "errors"

// AppointmentStatus is the lifecycle state of an appointment.
// Values are the exact labels stored in the appointments table.
type AppointmentStatus string

const (
	StatusConfirmed   AppointmentStatus = "Confirmado"
	StatusRescheduled AppointmentStatus = "Reprogramado"
	StatusCancelled   AppointmentStatus = "Cancelado"
	StatusNoShow      AppointmentStatus = "No-show"
	StatusCompleted   AppointmentStatus = "Realizado"
)

// ErrUnknownStatus is returned when a label is not one of the five statuses
var ErrUnknownStatus = errors.New("unknown appointment status")

// AllStatuses lists every status in display order
var AllStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusRescheduled,
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// DefaultAgendaStatuses is the agenda filter used when none is given
var DefaultAgendaStatuses = []AppointmentStatus{
	StatusConfirmed,
	StatusRescheduled,
}

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusConfirmed:   {StatusRescheduled, StatusCancelled, StatusNoShow, StatusCompleted},
	StatusRescheduled: {StatusCancelled, StatusNoShow, StatusCompleted, StatusRescheduled},
}

// ParseStatus validates a status label
func ParseStatus(label string) (AppointmentStatus, error) {
	s := AppointmentStatus(label)
	for _, valid := range AllStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrUnknownStatus
}

// CanTransition reports whether an administrator may move an appointment from one status to another.
// Cancelled, NoShow and Completed are terminal.
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves the status
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}
