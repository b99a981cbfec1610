package archive_appointments

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	archiveAppointments "github.com/m04kA/SMC-SalonBooking/internal/usecase/archive_appointments"
)

// ArchiveRequest HTTP request model; пустое тело = архивировать по сегодняшний день
type ArchiveRequest struct {
	Before string `json:"before,omitempty"` // "2025-06-01"
}

// ArchiveResponse HTTP response model
type ArchiveResponse struct {
	Before   string   `json:"before"`
	Archived int      `json:"archived"`
	IDs      []string `json:"ids"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ArchiveRequest) ToUseCaseRequest() (*archiveAppointments.Request, error) {
	if r.Before == "" {
		return &archiveAppointments.Request{}, nil
	}
	before, err := time.ParseInLocation(domain.DateFormat, r.Before, time.Local)
	if err != nil {
		return nil, err
	}
	return &archiveAppointments.Request{Before: &before}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *archiveAppointments.Response) *ArchiveResponse {
	ids := resp.IDs
	if ids == nil {
		ids = []string{}
	}
	return &ArchiveResponse{
		Before:   resp.Before.Format(domain.DateFormat),
		Archived: resp.Archived,
		IDs:      ids,
	}
}
