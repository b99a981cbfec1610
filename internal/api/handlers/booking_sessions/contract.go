package booking_sessions

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/booking"
)

type BookingFlow interface {
	Start() *booking.View
	View(ctx context.Context, id string) (*booking.View, error)
	Apply(ctx context.Context, id string, event booking.Event) (*booking.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
