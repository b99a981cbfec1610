package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "la fecha es obligatoria"
	msgInvalidDate     = "formato de fecha inválido, se espera AAAA-MM-DD"
	msgMissingCategory = "la categoría es obligatoria"
	msgPastDate        = "la fecha ya pasó"
	msgNoServices      = "no se seleccionó ningún servicio"
	msgInvalidParams   = "parámetros de consulta inválidos"
	msgInvalidZones    = "no se pueden combinar zonas del mismo grupo"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (YYYY-MM-DD), category, zones (через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	category := query.Get("category")
	if category == "" {
		h.logger.Warn("GET /available-slots - Missing category")
		handlers.RespondBadRequest(w, msgMissingCategory)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, category, query.Get("zones"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrNoServicesSelected):
			h.logger.Warn("GET /available-slots - No services selected: category=%s, zones=%s",
				category, query.Get("zones"))
			handlers.RespondUnprocessable(w, msgNoServices)

		case errors.Is(err, getAvailableSlots.ErrInvalidSelection):
			h.logger.Warn("GET /available-slots - Exclusive zones combined: %v", err)
			handlers.RespondBadRequest(w, msgInvalidZones)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, category=%s, error=%v",
				dateStr, category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, category=%s, slots_count=%d",
		dateStr, category, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
