package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// ToServiceRequest формирует фильтр агенды из query параметров.
// from, to: YYYY-MM-DD; status: список через запятую; all: true для всех статусов.
func ToServiceRequest(query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if s := query.Get("from"); s != "" {
		from, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if s := query.Get("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if status := strings.TrimSpace(part); status != "" {
				req.Statuses = append(req.Statuses, status)
			}
		}
	}

	if s := query.Get("all"); s != "" {
		all, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid all value: %w", err)
		}
		req.All = all
	}

	return req, nil
}
