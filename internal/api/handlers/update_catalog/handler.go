package update_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidCatalog     = "duración y precio no pueden ser negativos"
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

// Handle PUT /api/v1/admin/catalog
// Заменяет каталог целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceCatalogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/catalog - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceAll(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /admin/catalog - Invalid catalog: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCatalog)

		default:
			h.logger.Error("PUT /admin/catalog - Failed to save catalog: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/catalog - Catalog saved: rows=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
