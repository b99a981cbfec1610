package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeAppointments struct {
	existing []*domain.Appointment
	created  []*domain.Appointment
	err      error

	// createErrs возвращаются по одной на вызов Create, после ошибки existing заменяется на racing
	createErrs []error
	racing     []*domain.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		f.existing = f.racing
		return nil, err
	}
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAppointments) GetByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeClients struct {
	byHandle map[string]*domain.Client
	upserted []*domain.Client
}

func (f *fakeClients) GetByHandle(_ context.Context, handle string) (*domain.Client, error) {
	if c, ok := f.byHandle[handle]; ok {
		return c, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClients) Upsert(_ context.Context, c *domain.Client) error {
	f.upserted = append(f.upserted, c)
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) List(_ context.Context) ([]domain.ServiceEntry, error) {
	return domain.DefaultCatalog(), nil
}

type fakeTx struct {
	serializable int
	plain        int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.plain++
	return fn(ctx)
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.serializable++
	return fn(ctx)
}

// sqlTx транзакция без базы для настоящего txmanager
type sqlTx struct{}

func (sqlTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (sqlTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (sqlTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (sqlTx) Commit() error                                                    { return nil }
func (sqlTx) Rollback() error                                                  { return nil }

type sqlBeginner struct{ begins int }

func (b *sqlBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	return sqlTx{}, nil
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (f *fakeMetrics) IncBookingsCreated()  { f.created++ }
func (f *fakeMetrics) IncBookingConflicts() { f.conflicts++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2025-06-02 понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)

type deps struct {
	appts   *fakeAppointments
	clients *fakeClients
	tx      *fakeTx
	metrics *fakeMetrics
}

func newTestUseCase(revalidate bool, now time.Time) (*UseCase, *deps) {
	d := &deps{
		appts:   &fakeAppointments{},
		clients: &fakeClients{byHandle: map[string]*domain.Client{}},
		tx:      &fakeTx{},
		metrics: &fakeMetrics{},
	}
	uc := NewUseCase(d.appts, d.clients, fakeCatalog{}, d.tx, domain.DefaultSlotSettings(), revalidate, d.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	uc.newID = func() string { return "abcd1234" }
	return uc, d
}

func validRequest() *Request {
	return &Request{
		Category:     "Láser",
		Zones:        []string{"Axilas", "Brazos"},
		Date:         monday,
		StartTime:    "09:30",
		ClientName:   "Ana",
		ClientHandle: "5491100000000",
		ClientEmail:  "ana@example.com",
		Notes:        "primera vez",
	}
}

func TestExecute_CreatesAppointmentAndClient(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "abcd1234", resp.ID)
	assert.Equal(t, types.TimeString("10:15"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, 26000, resp.Price)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "5491100000000", resp.ClientID)

	require.Len(t, d.appts.created, 1)
	created := d.appts.created[0]
	assert.False(t, created.ReminderSent)
	assert.Equal(t, []string{"Axilas", "Brazos"}, created.Zones)

	require.Len(t, d.clients.upserted, 1)
	assert.Equal(t, "5491100000000", d.clients.upserted[0].ID)
	assert.Equal(t, 1, d.tx.serializable)
	assert.Equal(t, 1, d.metrics.created)
}

func TestExecute_ReusesExistingClientID(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	d.clients.byHandle["5491100000000"] = &domain.Client{ID: "legacy-7", Handle: "5491100000000", Name: "Ana"}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "legacy-7", resp.ClientID)
	assert.Equal(t, "legacy-7", d.clients.upserted[0].ID)
}

func TestExecute_ConflictOnCommit(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	// Запись появилась между показом слотов и подтверждением
	d.appts.existing = []*domain.Appointment{
		{ID: "other", Date: monday, Start: "09:00", End: "09:30", Status: domain.StatusConfirmed},
	}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, d.appts.created)
	assert.Equal(t, 1, d.metrics.conflicts)
}

func TestExecute_WithoutRevalidationSkipsConflictCheck(t *testing.T) {
	uc, d := newTestUseCase(false, monday.AddDate(0, 0, -1))
	d.appts.existing = []*domain.Appointment{
		{ID: "other", Date: monday, Start: "09:00", End: "09:30", Status: domain.StatusConfirmed},
	}

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, d.tx.plain)
	assert.Equal(t, 0, d.tx.serializable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		now     time.Time
		wantErr error
	}{
		{"no zones", func(r *Request) { r.Zones = nil }, monday, ErrNoServicesSelected},
		{"unknown zone", func(r *Request) { r.Zones = []string{"Espalda"} }, monday, ErrNoServicesSelected},
		{"two zones of one group", func(r *Request) { r.Zones = []string{"Axilas", "Piernas completas", "Medias piernas"} }, monday, ErrInvalidSelection},
		{"missing name", func(r *Request) { r.ClientName = " " }, monday, ErrInvalidInput},
		{"missing handle", func(r *Request) { r.ClientHandle = "" }, monday, ErrInvalidInput},
		{"bad start", func(r *Request) { r.StartTime = "9h30" }, monday, ErrInvalidInput},
		{"past date", func(r *Request) {}, monday.AddDate(0, 0, 1), ErrInvalidDate},
		{"outside window", func(r *Request) { r.StartTime = "12:30" }, monday, ErrInvalidTimeSlot},
		{"weekend", func(r *Request) { r.Date = monday.AddDate(0, 0, 5) }, monday, ErrInvalidTimeSlot},
		{"already started", func(r *Request) {}, monday.Add(9*time.Hour + 30*time.Minute), ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newTestUseCase(true, tt.now)
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, d.appts.created)
		})
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	d.appts.err = errors.New("disk full")

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, d.metrics.created)
}

func serializationFailure() error {
	return fmt.Errorf("%w: Create - execute insert: %w", appointmentRepo.ErrExecQuery, &pq.Error{Code: "40001"})
}

func TestExecute_SerializationFailureRetriedIntoConflict(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	beginner := &sqlBeginner{}
	uc.txManager = txmanager.NewTransactionManager(beginner)
	d.appts.createErrs = []error{serializationFailure()}
	// Параллельная запись на то же время зафиксировалась первой
	d.appts.racing = []*domain.Appointment{
		{ID: "other", Date: monday, Start: "09:30", End: "10:00", Status: domain.StatusConfirmed},
	}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, beginner.begins)
	assert.Empty(t, d.appts.created)
	assert.Equal(t, 1, d.metrics.conflicts)
}

func TestExecute_SerializationFailureRetriedIntoSuccess(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	beginner := &sqlBeginner{}
	uc.txManager = txmanager.NewTransactionManager(beginner)
	d.appts.createErrs = []error{serializationFailure()}

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "abcd1234", resp.ID)
	assert.Equal(t, 2, beginner.begins)
	assert.Len(t, d.appts.created, 1)
}

func TestExecute_KeepsDriverErrorChain(t *testing.T) {
	uc, d := newTestUseCase(true, monday.AddDate(0, 0, -1))
	d.appts.err = serializationFailure()

	_, err := uc.Execute(context.Background(), validRequest())

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewAppointmentID(t *testing.T) {
	id := NewAppointmentID()
	assert.Len(t, id, domain.AppointmentIDLength)
	assert.NotEqual(t, id, NewAppointmentID())
}
