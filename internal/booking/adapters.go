package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	catalogModels "github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CatalogQuoter адаптирует сервис каталога к Quoter
type CatalogQuoter struct {
	svc *catalog.Service
}

// NewCatalogQuoter создаёт адаптер каталога
func NewCatalogQuoter(svc *catalog.Service) *CatalogQuoter {
	return &CatalogQuoter{svc: svc}
}

// Quote считает выбор через сервис каталога
func (q *CatalogQuoter) Quote(ctx context.Context, category string, zones []string, groupChoices map[string]string, extras []string) (Quote, error) {
	resp, err := q.svc.Quote(ctx, &catalogModels.QuoteRequest{
		Category:     category,
		Zones:        zones,
		GroupChoices: groupChoices,
		Extras:       extras,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNoServicesSelected):
			return Quote{}, ErrNoZonesSelected
		case errors.Is(err, catalog.ErrInvalidSelection):
			return Quote{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		return Quote{}, err
	}
	return Quote{Zones: resp.Zones, DurationMinutes: resp.DurationMinutes, Price: resp.Price}, nil
}

// SlotsUseCase адаптирует поиск слотов к SlotFinder
type SlotsUseCase struct {
	uc *get_available_slots.UseCase
}

// NewSlotsUseCase создаёт адаптер поиска слотов
func NewSlotsUseCase(uc *get_available_slots.UseCase) *SlotsUseCase {
	return &SlotsUseCase{uc: uc}
}

// Slots возвращает свободные времена начала
func (a *SlotsUseCase) Slots(ctx context.Context, date time.Time, category string, zones []string) ([]string, error) {
	resp, err := a.uc.Execute(ctx, &get_available_slots.Request{Date: date, Category: category, Zones: zones})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrInvalidDate):
			return nil, ErrDateInPast
		case errors.Is(err, get_available_slots.ErrNoServicesSelected):
			return nil, ErrNoZonesSelected
		case errors.Is(err, get_available_slots.ErrInvalidSelection):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		}
		return nil, err
	}

	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}
	return slots, nil
}

// BookingUseCase адаптирует создание записи к Booker
type BookingUseCase struct {
	uc *create_booking.UseCase
}

// NewBookingUseCase создаёт адаптер создания записи
func NewBookingUseCase(uc *create_booking.UseCase) *BookingUseCase {
	return &BookingUseCase{uc: uc}
}

// Book создаёт запись
func (a *BookingUseCase) Book(ctx context.Context, req BookingRequest) (string, error) {
	resp, err := a.uc.Execute(ctx, &create_booking.Request{
		Category:     req.Category,
		Zones:        req.Zones,
		Date:         req.Date,
		StartTime:    types.TimeString(req.StartTime),
		ClientName:   req.ClientName,
		ClientHandle: req.ClientHandle,
		ClientEmail:  req.ClientEmail,
		Notes:        req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, create_booking.ErrSlotNotAvailable),
			errors.Is(err, create_booking.ErrTooLateToBook),
			errors.Is(err, create_booking.ErrInvalidTimeSlot):
			return "", fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		case errors.Is(err, create_booking.ErrInvalidDate):
			return "", ErrDateInPast
		case errors.Is(err, create_booking.ErrNoServicesSelected):
			return "", ErrNoZonesSelected
		case errors.Is(err, create_booking.ErrInvalidSelection):
			return "", fmt.Errorf("%w: %v", ErrInvalidSelection, err)
		case errors.Is(err, create_booking.ErrInvalidInput):
			return "", fmt.Errorf("%w: %v", ErrMissingDetails, err)
		}
		return "", err
	}
	return resp.ID, nil
}
