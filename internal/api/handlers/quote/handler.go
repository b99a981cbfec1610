package quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgNoServices         = "no se seleccionó ningún servicio"
	msgInvalidSelection   = "selección de zonas inválida"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoServicesSelected):
			h.logger.Warn("POST /quote - No services selected: category=%s", req.Category)
			handlers.RespondUnprocessable(w, msgNoServices)

		case errors.Is(err, catalog.ErrInvalidSelection):
			h.logger.Warn("POST /quote - Invalid selection: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		default:
			h.logger.Error("POST /quote - Failed to quote: category=%s, error=%v", req.Category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quote - Quote calculated: category=%s, duration=%d, price=%d",
		result.Category, result.DurationMinutes, result.Price)
	handlers.RespondJSON(w, http.StatusOK, result)
}
