package appointments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/calendar"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service сервис администрирования записей
type Service struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	historyRepo     HistoryRepository
	encoder         CalendarEncoder
	agendaDays      int
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	historyRepo HistoryRepository,
	encoder CalendarEncoder,
	agendaDays int,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		historyRepo:     historyRepo,
		encoder:         encoder,
		agendaDays:      agendaDays,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider устанавливает провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List возвращает агенду за период.
// По умолчанию: с сегодняшнего дня на agendaDays вперёд, статусы Confirmado и Reprogramado.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	s.logger.Info("List: fetching appointments from=%s to=%s statuses=%v",
		filter.From.Format(domain.DateFormat), filter.To.Format(domain.DateFormat), filter.Statuses)

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	names, err := s.clientNames(ctx)
	if err != nil {
		s.logger.Error("List: failed to load clients: %v", err)
		return nil, fmt.Errorf("%w: List - client repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointmentList(appointments, names)
	resp.From = filter.From.Format(domain.DateFormat)
	resp.To = filter.To.Format(domain.DateFormat)

	s.logger.Info("List: found %d appointments", len(appointments))
	return resp, nil
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return s.withClientName(ctx, appointment), nil
}

// Update ручное редактирование записи.
// Пересечения с другими записями и буфер намеренно не проверяются.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: editing appointment id=%s", id)

	appointment, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(appointment, req); err != nil {
		s.logger.Warn("Update: invalid input for id=%s: %v", id, err)
		return nil, err
	}

	if err := s.save(ctx, "Update", appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Update: appointment id=%s updated", id)
	return s.withClientName(ctx, appointment), nil
}

// Reschedule переносит запись на новую дату и время.
// Конец пересчитывается по длительности, статус становится Reprogramado.
func (s *Service) Reschedule(ctx context.Context, id string, req *models.RescheduleRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Reschedule: appointment id=%s to date=%s start=%s", id, req.Date, req.StartTime)

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	appointment, err := s.get(ctx, "Reschedule", id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appointment.Status, domain.StatusRescheduled) {
		s.logger.Warn("Reschedule: appointment id=%s has status %s", id, appointment.Status)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, domain.StatusRescheduled)
	}

	end, err := start.AddMinutes(appointment.TotalDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment ends after midnight", ErrInvalidTimeRange)
	}

	appointment.Date = date
	appointment.Start = start
	appointment.End = end
	appointment.Status = domain.StatusRescheduled

	if err := s.save(ctx, "Reschedule", appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: appointment id=%s moved to %s %s-%s", id, req.Date, start, end)
	return s.withClientName(ctx, appointment), nil
}

// UpdateStatus меняет статус записи по таблице допустимых переходов
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s status=%s", id, req.Status)

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: unknown status=%q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	return s.changeStatus(ctx, "UpdateStatus", id, status)
}

// Cancel отменяет запись
func (s *Service) Cancel(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)
	return s.changeStatus(ctx, "Cancel", id, domain.StatusCancelled)
}

// History возвращает архив выполненных записей
func (s *Service) History(ctx context.Context) (*models.AppointmentListResponse, error) {
	s.logger.Info("History: fetching archived appointments")

	appointments, err := s.historyRepo.List(ctx)
	if err != nil {
		s.logger.Error("History: repository error: %v", err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	names, err := s.clientNames(ctx)
	if err != nil {
		s.logger.Error("History: failed to load clients: %v", err)
		return nil, fmt.Errorf("%w: History - client repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments, names), nil
}

// ExportICS пишет записи за период в формате iCalendar.
// Возвращает количество экспортированных событий.
func (s *Service) ExportICS(ctx context.Context, w io.Writer, req *models.ListRequest) (int, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("ExportICS: invalid filter: %v", err)
		return 0, err
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ExportICS: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExportICS - repository error: %v", ErrInternal, err)
	}

	names, err := s.clientNames(ctx)
	if err != nil {
		s.logger.Error("ExportICS: failed to load clients: %v", err)
		return 0, fmt.Errorf("%w: ExportICS - client repository error: %v", ErrInternal, err)
	}

	entries := make([]calendar.Entry, 0, len(appointments))
	for _, a := range appointments {
		entries = append(entries, calendar.Entry{Appointment: a, ClientName: names[a.ClientID]})
	}

	written, err := s.encoder.Encode(w, entries)
	if err != nil {
		s.logger.Error("ExportICS: encode error: %v", err)
		return 0, fmt.Errorf("%w: ExportICS - encode error: %v", ErrInternal, err)
	}

	if skipped := len(entries) - written; skipped > 0 {
		s.logger.Warn("ExportICS: skipped %d appointments with malformed time", skipped)
	}
	s.logger.Info("ExportICS: exported %d events", written)
	return written, nil
}

func (s *Service) changeStatus(ctx context.Context, op string, id string, status domain.AppointmentStatus) (*models.AppointmentResponse, error) {
	appointment, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appointment.Status, status) {
		s.logger.Warn("%s: transition %s -> %s not allowed for id=%s", op, appointment.Status, status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, status)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: failed to update status for id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	appointment.Status = status
	appointment.UpdatedAt = s.timeProvider.Now()

	s.logger.Info("%s: appointment id=%s is now %s", op, id, status)
	return s.withClientName(ctx, appointment), nil
}

func (s *Service) get(ctx context.Context, op string, id string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) save(ctx context.Context, op string, appointment *domain.Appointment) error {
	appointment.UpdatedAt = s.timeProvider.Now()
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: failed to save appointment id=%s: %v", op, appointment.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) buildFilter(req *models.ListRequest) (domain.AppointmentsFilter, error) {
	if req == nil {
		req = &models.ListRequest{}
	}

	today := domain.DateOnly(s.timeProvider.Now())
	from := today
	if req.From != nil {
		from = domain.DateOnly(*req.From)
	}
	to := from.AddDate(0, 0, s.agendaDays)
	if req.To != nil {
		to = domain.DateOnly(*req.To)
	}
	if to.Before(from) {
		return domain.AppointmentsFilter{}, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	filter := domain.AppointmentsFilter{From: &from, To: &to}

	switch {
	case req.All:
	case len(req.Statuses) > 0:
		statuses, err := models.ToDomainStatuses(req.Statuses)
		if err != nil {
			return domain.AppointmentsFilter{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		filter.Statuses = statuses
	default:
		filter.Statuses = domain.DefaultAgendaStatuses
	}

	return filter, nil
}

// clientNames строит отображение clientID -> имя
func (s *Service) clientNames(ctx context.Context) (map[string]string, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}

// withClientName конвертирует запись; ошибка загрузки клиентов не критична
func (s *Service) withClientName(ctx context.Context, appointment *domain.Appointment) *models.AppointmentResponse {
	names, err := s.clientNames(ctx)
	if err != nil {
		s.logger.Warn("failed to load client name for id=%s: %v", appointment.ClientID, err)
	}
	return models.FromDomainAppointment(appointment, names[appointment.ClientID])
}

func applyUpdate(a *domain.Appointment, req *models.UpdateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		a.Date = date
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return fmt.Errorf("%w: category is empty", ErrInvalidInput)
		}
		a.Category = category
	}
	if req.Zones != nil {
		a.Zones = domain.SplitZones(domain.JoinZones(req.Zones))
	}
	if req.Notes != nil {
		if len(*req.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		a.Notes = *req.Notes
	}

	return applyTimeRange(a, req)
}

// applyTimeRange меняет начало, конец и длительность так, что конец = начало + длительность.
// Явный конец задаёт длительность, иначе конец пересчитывается.
func applyTimeRange(a *domain.Appointment, req *models.UpdateRequest) error {
	if req.StartTime == nil && req.EndTime == nil && req.DurationMinutes == nil {
		return nil
	}

	start := a.Start
	if req.StartTime != nil {
		parsed, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
		start = parsed
	}

	duration := a.TotalDurationMinutes
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
		}
		duration = *req.DurationMinutes
	}

	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	var end types.TimeString
	if req.EndTime != nil {
		end, err = types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		endMin, err := end.Minutes()
		if err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		if endMin <= startMin {
			return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
		}
		if req.DurationMinutes != nil && endMin-startMin != duration {
			return fmt.Errorf("%w: %s-%s does not last %d minutes", ErrInvalidTimeRange, start, end, duration)
		}
		duration = endMin - startMin
		if duration > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
		}
	} else {
		if duration <= 0 {
			return fmt.Errorf("%w: appointment has no duration to keep", ErrInvalidTimeRange)
		}
		end, err = start.AddMinutes(duration)
		if err != nil {
			return fmt.Errorf("%w: %s + %d min: %v", ErrInvalidTimeRange, start, duration, err)
		}
	}

	a.Start = start
	a.End = end
	a.TotalDurationMinutes = duration
	return nil
}
