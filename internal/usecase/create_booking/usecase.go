package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	settings        domain.SlotSettings
	revalidate      bool
	metrics         MetricsCollector
	timeProvider    TimeProvider
	newID           func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// revalidate включает повторную проверку слота внутри сериализуемой транзакции.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	settings domain.SlotSettings,
	revalidate bool,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		settings:        settings,
		revalidate:      revalidate,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		newID:           NewAppointmentID,
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// NewAppointmentID короткий идентификатор записи: первые 8 символов UUID
func NewAppointmentID() string {
	return uuid.New().String()[:domain.AppointmentIDLength]
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, category=%s, zones=%s, date=%s, time=%s",
		req.ClientHandle, req.Category, domain.JoinZones(req.Zones), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Длительность и цена по каталогу
	catalog, err := uc.catalogRepo.List(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	if err := scheduling.CheckExclusiveZones(catalog, req.Category, req.Zones); err != nil {
		uc.logger.Warn("CreateBooking: invalid zone selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	duration := scheduling.ComputeDuration(catalog, req.Category, req.Zones)
	if duration <= 0 {
		uc.logger.Warn("CreateBooking: category=%s zones=%s match no catalog entries",
			req.Category, domain.JoinZones(req.Zones))
		return nil, ErrNoServicesSelected
	}
	price := scheduling.ComputePrice(catalog, req.Category, req.Zones)

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateBooking: start=%s + %d min passes midnight", req.StartTime, duration)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	// 4. Проверяем окно работы и прошедшее время
	if !scheduling.FitsWindow(req.Date, req.StartTime, endTime, uc.settings.Availability) {
		uc.logger.Warn("CreateBooking: %s-%s on %s is outside opening hours",
			req.StartTime, endTime, req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidTimeSlot
	}

	if err := validateStartTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	handle := strings.TrimSpace(req.ClientHandle)

	appointment := &domain.Appointment{
		ID:                   uc.newID(),
		Date:                 domain.DateOnly(req.Date),
		Start:                req.StartTime,
		End:                  endTime,
		Category:             req.Category,
		Zones:                req.Zones,
		TotalDurationMinutes: duration,
		Status:               domain.StatusConfirmed,
		Notes:                strings.TrimSpace(req.Notes),
		ReminderSent:         false,
	}

	run := uc.txManager.Do
	if uc.revalidate {
		run = uc.txManager.DoSerializable
	}

	// 5. Клиент и запись сохраняются в одной транзакции
	err = run(ctx, func(txCtx context.Context) error {
		if uc.revalidate {
			if err := uc.checkSlot(txCtx, appointment); err != nil {
				return err
			}
		}

		clientID, err := uc.upsertClient(txCtx, handle, req)
		if err != nil {
			return err
		}
		appointment.ClientID = clientID

		if _, err := uc.appointmentRepo.Create(txCtx, appointment); err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) && uc.metrics != nil {
			uc.metrics.IncBookingConflicts()
		}
		if !isKnownError(err) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingsCreated()
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%s, %s-%s, client=%s",
		appointment.ID, appointment.Start, appointment.End, appointment.ClientID)

	return &Response{
		ID:              appointment.ID,
		ClientID:        appointment.ClientID,
		Date:            appointment.Date,
		StartTime:       appointment.Start,
		EndTime:         appointment.End,
		Category:        appointment.Category,
		Zones:           appointment.Zones,
		DurationMinutes: appointment.TotalDurationMinutes,
		Price:           price,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
	}, nil
}

// checkSlot повторяет проверку пересечений внутри транзакции записи,
// чтобы две одновременные записи на одно время не прошли обе
func (uc *UseCase) checkSlot(ctx context.Context, a *domain.Appointment) error {
	existing, err := uc.appointmentRepo.GetByDate(ctx, a.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	if scheduling.Conflicts(a.Date, a.Start, a.End, existing, uc.settings.BufferMinutes) {
		uc.logger.Warn("CreateBooking: slot %s-%s on %s conflicts with %d existing appointments",
			a.Start, a.End, a.Date.Format(domain.DateFormat), len(existing))
		return ErrSlotNotAvailable
	}

	return nil
}

// upsertClient находит клиента по контакту или создаёт нового с ID = контакт
func (uc *UseCase) upsertClient(ctx context.Context, handle string, req *Request) (string, error) {
	client := &domain.Client{
		ID:     handle,
		Handle: handle,
		Name:   strings.TrimSpace(req.ClientName),
		Email:  strings.TrimSpace(req.ClientEmail),
	}

	existing, err := uc.clientRepo.GetByHandle(ctx, handle)
	switch {
	case err == nil:
		client.ID = existing.ID
	case errors.Is(err, clientRepo.ErrClientNotFound):
		uc.logger.Info("CreateBooking: new client handle=%s", handle)
	default:
		uc.logger.Error("CreateBooking: failed to find client handle=%s: %v", handle, err)
		return "", fmt.Errorf("%w: failed to find client: %w", ErrInternal, err)
	}

	if err := uc.clientRepo.Upsert(ctx, client); err != nil {
		uc.logger.Error("CreateBooking: failed to save client id=%s: %v", client.ID, err)
		return "", fmt.Errorf("%w: failed to save client: %w", ErrInternal, err)
	}

	return client.ID, nil
}

func isKnownError(err error) bool {
	for _, known := range []error{
		ErrSlotNotAvailable,
		ErrInvalidTimeSlot,
		ErrTooLateToBook,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
