package archive_appointments

import (
	"context"

	archiveAppointments "github.com/m04kA/SMC-SalonBooking/internal/usecase/archive_appointments"
)

type ArchiveUseCase interface {
	Execute(ctx context.Context, req *archiveAppointments.Request) (*archiveAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
