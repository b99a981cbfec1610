package booking_sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/booking"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgSessionNotFound    = "sesión no encontrada o vencida"
	msgInvalidTransition  = "acción no disponible en este paso"
	msgNoZones            = "elegí al menos una zona"
	msgInvalidSelection   = "selección de zonas inválida"
	msgInvalidDate        = "formato de fecha inválido, se espera AAAA-MM-DD"
	msgDateInPast         = "la fecha ya pasó"
	msgSlotUnavailable    = "el horario elegido ya no está disponible"
	msgMissingDetails     = "nombre y WhatsApp son obligatorios"
)

type Handler struct {
	flow   BookingFlow
	logger Logger
}

func NewHandler(flow BookingFlow, logger Logger) *Handler {
	return &Handler{
		flow:   flow,
		logger: logger,
	}
}

// Create POST /api/v1/booking/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	view := h.flow.Start()

	h.logger.Info("POST /booking/sessions - Session created: id=%s", view.Session.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromView(view))
}

// Get GET /api/v1/booking/sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	view, err := h.flow.View(r.Context(), id)
	if err != nil {
		h.respondFlowError(w, "GET /booking/sessions/{id}", id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Apply POST /api/v1/booking/sessions/{id}/events
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking/sessions/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.flow.Apply(r.Context(), id, req.ToEvent())
	if err != nil {
		h.respondFlowError(w, "POST /booking/sessions/{id}/events", id, err)
		return
	}

	h.logger.Info("POST /booking/sessions/{id}/events - Event applied: id=%s, event=%s, state=%s",
		id, req.Type, view.Session.State)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

func (h *Handler) respondFlowError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: id=%s", route, id)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, booking.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: id=%s, error=%v", route, id, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, booking.ErrSlotUnavailable):
		h.logger.Warn("%s - Slot unavailable: id=%s, error=%v", route, id, err)
		handlers.RespondConflict(w, msgSlotUnavailable)

	case errors.Is(err, booking.ErrNoZonesSelected):
		handlers.RespondUnprocessable(w, msgNoZones)

	case errors.Is(err, booking.ErrInvalidSelection):
		handlers.RespondBadRequest(w, msgInvalidSelection)

	case errors.Is(err, booking.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, booking.ErrDateInPast):
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, booking.ErrMissingDetails):
		handlers.RespondBadRequest(w, msgMissingDetails)

	default:
		h.logger.Error("%s - Failed: id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
