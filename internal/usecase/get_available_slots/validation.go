package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	if len(req.Zones) == 0 {
		return fmt.Errorf("%w: at least one zone is required", ErrNoServicesSelected)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом (сегодня допустимо)
func validateDate(requestDate time.Time, now time.Time) error {
	if domain.DateOnly(requestDate).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}
	return nil
}
