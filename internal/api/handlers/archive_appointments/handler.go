package archive_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera AAAA-MM-DD"
)

type Handler struct {
	useCase ArchiveUseCase
	logger  Logger
}

func NewHandler(useCase ArchiveUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/archive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/appointments/archive - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/appointments/archive - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("POST /admin/appointments/archive - Failed to archive: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /admin/appointments/archive - Archived %d appointments up to %s",
		response.Archived, response.Before)
	handlers.RespondJSON(w, http.StatusOK, response)
}
