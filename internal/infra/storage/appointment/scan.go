package appointment

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Columns колонки записи в порядке сканирования.
// Используются также репозиторием истории, у которого та же структура строки.
var Columns = []string{
	"id",
	"client_id",
	"date",
	"start_time",
	"end_time",
	"category",
	"zones",
	"total_duration_minutes",
	"status",
	"notes",
	"reminder_sent",
	"created_at",
	"updated_at",
}

// RowScanner общий интерфейс *sql.Row и *sql.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// Scan читает запись из строки результата.
// Время начала и конца не валидируется: битые значения отсеиваются при поиске слотов.
func Scan(row RowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		date                 time.Time
		zones                string
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&date,
		&a.Start,
		&a.End,
		&a.Category,
		&zones,
		&a.TotalDurationMinutes,
		&status,
		&a.Notes,
		&a.ReminderSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит в UTC, приводим к локальной полуночи того же дня
	y, m, d := date.Date()
	a.Date = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	a.Zones = domain.SplitZones(zones)
	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// Values значения записи для INSERT в порядке Columns без created_at/updated_at
func Values(a *domain.Appointment) []interface{} {
	return []interface{}{
		a.ID,
		a.ClientID,
		a.Date.Format(domain.DateFormat),
		a.Start.String(),
		a.End.String(),
		a.Category,
		domain.JoinZones(a.Zones),
		a.TotalDurationMinutes,
		string(a.Status),
		a.Notes,
		a.ReminderSent,
	}
}
