package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	Category        string   `json:"category"`
	Zones           []string `json:"zones"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           int      `json:"price"`
	Slots           []string `json:"slots"` // времена начала "HH:MM"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Category:        resp.Category,
		Zones:           resp.Zones,
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// zones передаются одной строкой через запятую, как в записях.
func ToUseCaseRequest(dateStr, category, zonesStr string) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:     date,
		Category: category,
		Zones:    domain.SplitZones(zonesStr),
	}, nil
}
