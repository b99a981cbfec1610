package get_zone_options

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

const (
	msgMissingCategory  = "la categoría es obligatoria"
	msgCategoryNotFound = "categoría no encontrada"
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

// Handle GET /api/v1/catalog/options?category=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		h.logger.Warn("GET /catalog/options - Missing category")
		handlers.RespondBadRequest(w, msgMissingCategory)
		return
	}

	result, err := h.service.Options(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCategoryNotFound):
			h.logger.Warn("GET /catalog/options - Category not found: category=%s", category)
			handlers.RespondNotFound(w, msgCategoryNotFound)

		default:
			h.logger.Error("GET /catalog/options - Failed to get options: category=%s, error=%v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /catalog/options - Options retrieved successfully: category=%s, groups=%d, zones=%d",
		category, len(result.Groups), len(result.Zones))
	handlers.RespondJSON(w, http.StatusOK, result)
}
