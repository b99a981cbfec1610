package archive_appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UseCase переносит выполненные записи в архив
type UseCase struct {
	appointmentRepo AppointmentRepository
	historyRepo     HistoryRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	historyRepo HistoryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		historyRepo:     historyRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит записи со статусом Realizado и датой не позже отсечения в history.
// Вставка в архив и удаление выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	cutoff := domain.DateOnly(now)
	if req.Before != nil {
		if req.Before.IsZero() {
			return nil, fmt.Errorf("%w: cutoff date is empty", ErrInvalidInput)
		}
		cutoff = domain.DateOnly(*req.Before)
	}

	uc.logger.Info("ArchiveAppointments: cutoff=%s", cutoff.Format(domain.DateFormat))

	var ids []string

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		completed, err := uc.appointmentRepo.ListCompletedBefore(txCtx, cutoff)
		if err != nil {
			return fmt.Errorf("%w: failed to list completed appointments: %v", ErrInternal, err)
		}
		if len(completed) == 0 {
			return nil
		}

		if err := uc.historyRepo.Insert(txCtx, completed); err != nil {
			return fmt.Errorf("%w: failed to insert history: %v", ErrInternal, err)
		}

		ids = make([]string, len(completed))
		for i, a := range completed {
			ids[i] = a.ID
		}

		deleted, err := uc.appointmentRepo.DeleteByIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: failed to delete archived appointments: %v", ErrInternal, err)
		}
		if int(deleted) != len(ids) {
			return fmt.Errorf("%w: deleted %d of %d archived appointments", ErrInternal, deleted, len(ids))
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("ArchiveAppointments: %v", err)
		return nil, err
	}

	uc.logger.Info("ArchiveAppointments: archived %d appointments", len(ids))

	return &Response{
		Before:   cutoff,
		Archived: len(ids),
		IDs:      ids,
	}, nil
}
