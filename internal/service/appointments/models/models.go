package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// ListRequest фильтр агенды; пустые поля заменяются значениями по умолчанию
type ListRequest struct {
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
	Statuses []string   `json:"statuses,omitempty"`
	All      bool       `json:"all,omitempty"` // все статусы
}

// UpdateRequest ручное редактирование записи администратором.
// nil поле означает "не менять". Буфер и пересечения не проверяются.
type UpdateRequest struct {
	Date            *string  `json:"date,omitempty"`      // "2025-06-02"
	StartTime       *string  `json:"startTime,omitempty"` // "09:30"
	EndTime         *string  `json:"endTime,omitempty"`   // "10:15"
	Category        *string  `json:"category,omitempty"`
	Zones           []string `json:"zones,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// RescheduleRequest перенос записи: конец пересчитывается по длительности
type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// UpdateStatusRequest смена статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse запись агенды
type AppointmentResponse struct {
	ID              string   `json:"id"`
	ClientID        string   `json:"clientId"`
	ClientName      string   `json:"clientName"`
	Date            string   `json:"date"`      // "2025-06-02"
	StartTime       string   `json:"startTime"` // "09:30"
	EndTime         string   `json:"endTime"`   // "10:15"
	Category        string   `json:"category"`
	Zones           []string `json:"zones"`
	ZonesDisplay    string   `json:"zonesDisplay"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	Notes           string   `json:"notes,omitempty"`
	ReminderSent    bool     `json:"reminderSent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	From         string                `json:"from,omitempty"`
	To           string                `json:"to,omitempty"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Если имя клиента неизвестно, показывается его ID.
func FromDomainAppointment(a *domain.Appointment, clientName string) *AppointmentResponse {
	if a == nil {
		return nil
	}

	if clientName == "" {
		clientName = a.ClientID
	}

	zones := a.Zones
	if zones == nil {
		zones = []string{}
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ClientName:      clientName,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.Start.String(),
		EndTime:         a.End.String(),
		Category:        a.Category,
		Zones:           zones,
		ZonesDisplay:    a.ZonesDisplay(),
		DurationMinutes: a.TotalDurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		ReminderSent:    a.ReminderSent,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(appointments []*domain.Appointment, names map[string]string) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a, names[a.ClientID]))
	}
	return resp
}

// ParseDate парсит дату формата YYYY-MM-DD в локальной зоне
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in format %s: %w", domain.DateFormat, err)
	}
	return d, nil
}

// ToDomainStatuses валидирует список статусов
func ToDomainStatuses(labels []string) ([]domain.AppointmentStatus, error) {
	result := make([]domain.AppointmentStatus, 0, len(labels))
	for _, l := range labels {
		s, err := domain.ParseStatus(l)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, l)
		}
		result = append(result, s)
	}
	return result, nil
}
