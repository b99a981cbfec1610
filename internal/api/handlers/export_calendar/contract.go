package export_calendar

import (
	"context"
	"io"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

type CalendarService interface {
	ExportICS(ctx context.Context, w io.Writer, req *models.ListRequest) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
