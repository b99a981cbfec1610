package appointments

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/calendar"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeAppointmentRepo struct {
	byID       map[string]*domain.Appointment
	listed     []*domain.Appointment
	lastFilter domain.AppointmentsFilter
	updated    *domain.Appointment
	statusSet  domain.AppointmentStatus
	err        error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.listed, f.err
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	f.updated = a
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ string, status domain.AppointmentStatus) error {
	f.statusSet = status
	return nil
}

type fakeClientRepo struct {
	clients []*domain.Client
}

func (f *fakeClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	return f.clients, nil
}

type fakeHistoryRepo struct {
	archived []*domain.Appointment
}

func (f *fakeHistoryRepo) List(_ context.Context) ([]*domain.Appointment, error) {
	return f.archived, nil
}

type fakeEncoder struct {
	entries []calendar.Entry
}

func (f *fakeEncoder) Encode(w io.Writer, entries []calendar.Entry) (int, error) {
	f.entries = entries
	_, err := io.WriteString(w, "BEGIN:VCALENDAR")
	return len(entries), err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)

func confirmed(id string) *domain.Appointment {
	return &domain.Appointment{
		ID:                   id,
		ClientID:             "+5491100000000",
		Date:                 time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local),
		Start:                "10:00",
		End:                  "10:45",
		Category:             "Láser",
		Zones:                []string{"Axilas", "Brazos"},
		TotalDurationMinutes: 45,
		Status:               domain.StatusConfirmed,
	}
}

func newTestService(repo *fakeAppointmentRepo) (*Service, *fakeEncoder) {
	enc := &fakeEncoder{}
	clients := &fakeClientRepo{clients: []*domain.Client{{ID: "+5491100000000", Name: "Ana"}}}
	svc := NewService(repo, clients, &fakeHistoryRepo{}, enc, 14, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return svc, enc
}

func TestList_Defaults(t *testing.T) {
	repo := &fakeAppointmentRepo{listed: []*domain.Appointment{confirmed("a1"), {ID: "a2", ClientID: "unknown", Start: "11:00", End: "11:30"}}}
	svc, _ := newTestService(repo)

	resp, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 2)
	assert.Equal(t, "2025-06-02", resp.From)
	assert.Equal(t, "2025-06-16", resp.To)
	assert.Equal(t, domain.DefaultAgendaStatuses, repo.lastFilter.Statuses)
	assert.Equal(t, "Ana", resp.Appointments[0].ClientName)
	assert.Equal(t, "Axilas, Brazos", resp.Appointments[0].ZonesDisplay)
	assert.Equal(t, "unknown", resp.Appointments[1].ClientName)
}

func TestList_StatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.List(context.Background(), &models.ListRequest{Statuses: []string{"Realizado"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusCompleted}, repo.lastFilter.Statuses)

	_, err = svc.List(context.Background(), &models.ListRequest{All: true})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilter.Statuses)

	_, err = svc.List(context.Background(), &models.ListRequest{Statuses: []string{"Done"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_InvalidRange(t *testing.T) {
	svc, _ := newTestService(&fakeAppointmentRepo{})
	from := now.AddDate(0, 0, 5)

	_, err := svc.List(context.Background(), &models.ListRequest{From: &from, To: &now})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(&fakeAppointmentRepo{byID: map[string]*domain.Appointment{}})

	_, err := svc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_RepositoryError(t *testing.T) {
	svc, _ := newTestService(&fakeAppointmentRepo{err: errors.New("db down")})

	_, err := svc.GetByID(context.Background(), "a1")

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_FreeFormEdit(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
	svc, _ := newTestService(repo)

	resp, err := svc.Update(context.Background(), "a1", &models.UpdateRequest{
		StartTime: ptr.Ptr("9:00"),
		EndTime:   ptr.Ptr("12:00"),
		Zones:     []string{" Rostro ", "", "Cara"},
		Notes:     ptr.Ptr("piel sensible"),
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, []string{"Rostro", "Cara"}, repo.updated.Zones)
	assert.Equal(t, "piel sensible", repo.updated.Notes)
	// явный конец задаёт длительность
	assert.Equal(t, 180, repo.updated.TotalDurationMinutes)
	assert.Equal(t, domain.StatusConfirmed, repo.updated.Status)
}

func TestUpdate_KeepsEndConsistentWithDuration(t *testing.T) {
	tests := []struct {
		name         string
		req          *models.UpdateRequest
		wantStart    types.TimeString
		wantEnd      types.TimeString
		wantDuration int
	}{
		{
			name:         "start only moves end",
			req:          &models.UpdateRequest{StartTime: ptr.Ptr("09:00")},
			wantStart:    "09:00",
			wantEnd:      "09:45",
			wantDuration: 45,
		},
		{
			name:         "end only changes duration",
			req:          &models.UpdateRequest{EndTime: ptr.Ptr("11:30")},
			wantStart:    "10:00",
			wantEnd:      "11:30",
			wantDuration: 90,
		},
		{
			name:         "duration only moves end",
			req:          &models.UpdateRequest{DurationMinutes: ptr.Ptr(20)},
			wantStart:    "10:00",
			wantEnd:      "10:20",
			wantDuration: 20,
		},
		{
			name:         "start and duration",
			req:          &models.UpdateRequest{StartTime: ptr.Ptr("14:10"), DurationMinutes: ptr.Ptr(60)},
			wantStart:    "14:10",
			wantEnd:      "15:10",
			wantDuration: 60,
		},
		{
			name:         "matching end and duration",
			req:          &models.UpdateRequest{EndTime: ptr.Ptr("10:30"), DurationMinutes: ptr.Ptr(30)},
			wantStart:    "10:00",
			wantEnd:      "10:30",
			wantDuration: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
			svc, _ := newTestService(repo)

			_, err := svc.Update(context.Background(), "a1", tt.req)

			require.NoError(t, err)
			require.NotNil(t, repo.updated)
			assert.Equal(t, tt.wantStart, repo.updated.Start)
			assert.Equal(t, tt.wantEnd, repo.updated.End)
			assert.Equal(t, tt.wantDuration, repo.updated.TotalDurationMinutes)

			start, err := repo.updated.Start.Minutes()
			require.NoError(t, err)
			end, err := repo.updated.End.Minutes()
			require.NoError(t, err)
			assert.Equal(t, start+repo.updated.TotalDurationMinutes, end)
		})
	}
}

func TestUpdate_RejectsInconsistentTimes(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateRequest
	}{
		{name: "end before start", req: &models.UpdateRequest{EndTime: ptr.Ptr("09:00")}},
		{name: "end conflicts with duration", req: &models.UpdateRequest{EndTime: ptr.Ptr("11:00"), DurationMinutes: ptr.Ptr(30)}},
		{name: "start plus duration passes midnight", req: &models.UpdateRequest{StartTime: ptr.Ptr("23:40")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
			svc, _ := newTestService(repo)

			_, err := svc.Update(context.Background(), "a1", tt.req)

			assert.ErrorIs(t, err, ErrInvalidTimeRange)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdate_InvalidDuration(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), "a1", &models.UpdateRequest{DurationMinutes: ptr.Ptr(0)})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReschedule(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
	svc, _ := newTestService(repo)

	resp, err := svc.Reschedule(context.Background(), "a1", &models.RescheduleRequest{Date: "2025-06-04", StartTime: "14:20"})

	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", resp.Date)
	assert.Equal(t, "14:20", resp.StartTime)
	assert.Equal(t, "15:05", resp.EndTime)
	assert.Equal(t, string(domain.StatusRescheduled), resp.Status)
	assert.Equal(t, domain.StatusRescheduled, repo.updated.Status)
}

func TestReschedule_TerminalStatus(t *testing.T) {
	done := confirmed("a1")
	done.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": done}}
	svc, _ := newTestService(repo)

	_, err := svc.Reschedule(context.Background(), "a1", &models.RescheduleRequest{Date: "2025-06-04", StartTime: "14:20"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updated)
}

func TestReschedule_InvalidInput(t *testing.T) {
	svc, _ := newTestService(&fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}})

	_, err := svc.Reschedule(context.Background(), "a1", &models.RescheduleRequest{Date: "04/06/2025", StartTime: "14:20"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reschedule(context.Background(), "a1", &models.RescheduleRequest{Date: "2025-06-04", StartTime: "25:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{name: "confirmed to completed", from: domain.StatusConfirmed, to: "Realizado"},
		{name: "rescheduled to no-show", from: domain.StatusRescheduled, to: "No-show"},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: "Confirmado", wantErr: ErrInvalidTransition},
		{name: "back to confirmed", from: domain.StatusConfirmed, to: "Confirmado", wantErr: ErrInvalidTransition},
		{name: "unknown label", from: domain.StatusConfirmed, to: "Hecho", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := confirmed("a1")
			a.Status = tt.from
			repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": a}}
			svc, _ := newTestService(repo)

			resp, err := svc.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.statusSet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.statusSet)
		})
	}
}

func TestCancel(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: map[string]*domain.Appointment{"a1": confirmed("a1")}}
	svc, _ := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.statusSet)
}

func TestExportICS(t *testing.T) {
	repo := &fakeAppointmentRepo{listed: []*domain.Appointment{confirmed("a1")}}
	svc, enc := newTestService(repo)
	var buf bytes.Buffer

	n, err := svc.ExportICS(context.Background(), &buf, &models.ListRequest{All: true})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, enc.entries, 1)
	assert.Equal(t, "Ana", enc.entries[0].ClientName)
	assert.Contains(t, buf.String(), "VCALENDAR")
}

func TestHistory(t *testing.T) {
	done := confirmed("old")
	done.Status = domain.StatusCompleted
	svc := NewService(&fakeAppointmentRepo{}, &fakeClientRepo{}, &fakeHistoryRepo{archived: []*domain.Appointment{done}}, &fakeEncoder{}, 14, logger.NewNop())

	resp, err := svc.History(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "Realizado", resp.Appointments[0].Status)
}
