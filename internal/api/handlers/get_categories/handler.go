package get_categories

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
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

// Handle GET /api/v1/catalog/categories
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("GET /catalog/categories - Failed to get categories: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /catalog/categories - Categories retrieved successfully: count=%d", len(result.Categories))
	handlers.RespondJSON(w, http.StatusOK, result)
}
