package appointments

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/calendar"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, appointment *domain.Appointment) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// ClientRepository интерфейс репозитория клиентов (для имён в агенде)
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
}

// HistoryRepository интерфейс архива
type HistoryRepository interface {
	List(ctx context.Context) ([]*domain.Appointment, error)
}

// CalendarEncoder пишет агенду в iCalendar
type CalendarEncoder interface {
	Encode(w io.Writer, entries []calendar.Entry) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
