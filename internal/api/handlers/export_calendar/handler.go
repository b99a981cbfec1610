package export_calendar

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
)

const (
	msgInvalidParams = "parámetros de consulta inválidos"
	msgInvalidStatus = "estado desconocido"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar.ics
// Query params те же, что у списка записей: from, to, status, all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := list_appointments.ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/calendar.ics - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// пишем в буфер, чтобы при ошибке кодирования вернуть JSON, а не обрезанный календарь
	var buf bytes.Buffer
	count, err := h.service.ExportICS(r.Context(), &buf, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /admin/calendar.ics - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/calendar.ics - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/calendar.ics - Failed to export: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/calendar.ics - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /admin/calendar.ics - Exported %d events", count)
}
