package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	settings        domain.SlotSettings
	metrics         MetricsCollector
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	settings domain.SlotSettings,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов.
// Слоты пересчитываются при каждом вызове, текущее время берётся в момент вызова.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, category=%s, zones=%s",
		req.Date.Format(domain.DateFormat), req.Category, domain.JoinZones(req.Zones))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Считаем длительность и цену по каталогу
	catalog, err := uc.catalogRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	if err := scheduling.CheckExclusiveZones(catalog, req.Category, req.Zones); err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid zone selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	duration := scheduling.ComputeDuration(catalog, req.Category, req.Zones)
	if duration <= 0 {
		uc.logger.Warn("GetAvailableSlots: category=%s zones=%s match no catalog entries",
			req.Category, domain.JoinZones(req.Zones))
		return nil, ErrNoServicesSelected
	}
	price := scheduling.ComputePrice(catalog, req.Category, req.Zones)

	// 4. Получаем записи на дату
	appointments, err := uc.appointmentRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты
	slots := scheduling.GenerateSlots(
		req.Date,
		duration,
		appointments,
		uc.settings.Availability,
		uc.settings.StepMinutes,
		uc.settings.BufferMinutes,
		now,
	)

	if uc.metrics != nil {
		uc.metrics.ObserveSlotsGenerated(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s, duration=%d min (%d appointments that day)",
		len(slots), req.Date.Format(domain.DateFormat), duration, len(appointments))

	return &Response{
		Date:            req.Date,
		Category:        req.Category,
		Zones:           req.Zones,
		DurationMinutes: duration,
		Price:           price,
		Slots:           slots,
	}, nil
}
