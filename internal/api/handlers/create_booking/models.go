package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errBadDate = errors.New("invalid date")
	errBadTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Category     string   `json:"category"`
	Zones        []string `json:"zones"`
	Date         string   `json:"date"`      // "2025-06-02"
	StartTime    string   `json:"startTime"` // "09:30"
	ClientName   string   `json:"clientName"`
	ClientHandle string   `json:"clientHandle"` // WhatsApp
	ClientEmail  string   `json:"clientEmail,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string   `json:"id"`
	ClientID        string   `json:"clientId"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	Category        string   `json:"category"`
	Zones           []string `json:"zones"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           int      `json:"price"`
	Status          string   `json:"status"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadTime, err)
	}

	return &createBooking.Request{
		Category:     r.Category,
		Zones:        r.Zones,
		Date:         date,
		StartTime:    startTime,
		ClientName:   r.ClientName,
		ClientHandle: r.ClientHandle,
		ClientEmail:  r.ClientEmail,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Category:        resp.Category,
		Zones:           resp.Zones,
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
