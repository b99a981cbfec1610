package archive_appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeAppointments struct {
	completed []*domain.Appointment
	cutoff    time.Time
	deleted   []string
}

func (f *fakeAppointments) ListCompletedBefore(_ context.Context, cutoff time.Time) ([]*domain.Appointment, error) {
	f.cutoff = cutoff
	return f.completed, nil
}

func (f *fakeAppointments) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	f.deleted = append(f.deleted, ids...)
	return int64(len(ids)), nil
}

type fakeHistory struct {
	inserted []*domain.Appointment
	err      error
}

func (f *fakeHistory) Insert(_ context.Context, appointments []*domain.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, appointments...)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var today = time.Date(2025, 6, 10, 15, 30, 0, 0, time.Local)

func TestExecute_MovesCompletedToHistory(t *testing.T) {
	appts := &fakeAppointments{completed: []*domain.Appointment{
		{ID: "a1", Status: domain.StatusCompleted},
		{ID: "a2", Status: domain.StatusCompleted},
	}}
	hist := &fakeHistory{}
	uc := NewUseCase(appts, hist, passthroughTx{}, logger.NewNop()).WithTimeProvider(fixedTime{now: today})

	resp, err := uc.Execute(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Archived)
	assert.Equal(t, []string{"a1", "a2"}, appts.deleted)
	assert.Len(t, hist.inserted, 2)
	assert.True(t, domain.SameDay(today, appts.cutoff))
	assert.Equal(t, 0, appts.cutoff.Hour())
}

func TestExecute_ExplicitCutoff(t *testing.T) {
	appts := &fakeAppointments{}
	uc := NewUseCase(appts, &fakeHistory{}, passthroughTx{}, logger.NewNop()).WithTimeProvider(fixedTime{now: today})

	before := time.Date(2025, 5, 31, 18, 0, 0, 0, time.Local)
	resp, err := uc.Execute(context.Background(), &Request{Before: &before})

	require.NoError(t, err)
	assert.Zero(t, resp.Archived)
	assert.Empty(t, appts.deleted)
	assert.True(t, domain.SameDay(before, appts.cutoff))
}

func TestExecute_HistoryFailureKeepsAppointments(t *testing.T) {
	appts := &fakeAppointments{completed: []*domain.Appointment{{ID: "a1", Status: domain.StatusCompleted}}}
	uc := NewUseCase(appts, &fakeHistory{err: errors.New("boom")}, passthroughTx{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, appts.deleted)
}
