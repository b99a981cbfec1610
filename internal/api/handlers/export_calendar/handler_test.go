package export_calendar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeCalendar struct {
	req *models.ListRequest
	err error
}

func (f *fakeCalendar) ExportICS(_ context.Context, w io.Writer, req *models.ListRequest) (int, error) {
	f.req = req
	if f.err != nil {
		_, _ = io.WriteString(w, "BEGIN:VCAL")
		return 0, f.err
	}
	_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	return 0, err
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeCalendar{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/calendar.ics?from=2025-06-01&all=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	assert.True(t, svc.req.All)
}

func TestHandle_ErrorDoesNotLeakPartialCalendar(t *testing.T) {
	h := NewHandler(&fakeCalendar{err: errors.New("encode failed")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/calendar.ics", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "VCAL")
}

func TestHandle_BadParams(t *testing.T) {
	h := NewHandler(&fakeCalendar{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/calendar.ics?from=junio", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
