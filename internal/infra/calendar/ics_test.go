package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestEncoder_Encode(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	entries := []Entry{
		{
			Appointment: &domain.Appointment{
				ID:       "abcd1234",
				ClientID: "5491100000000",
				Date:     date,
				Start:    "09:00",
				End:      "09:45",
				Category: "Láser",
				Zones:    []string{"Axilas", "Brazos"},
				Status:   domain.StatusConfirmed,
				Notes:    "primera sesión",
			},
			ClientName: "Ana",
		},
		{
			Appointment: &domain.Appointment{
				ID:       "broken00",
				Date:     date,
				Start:    "9h",
				End:      "10:00",
				Category: "Láser",
				Status:   domain.StatusConfirmed,
			},
		},
	}

	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	written, err := NewEncoder(now).Encode(&buf, entries)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))

	cal, err := ical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	uid, err := events[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "abcd1234@salon", uid)

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Láser: Axilas, Brazos (Ana)", summary)

	start, err := events[0].DateTimeStart(time.Local)
	require.NoError(t, err)
	assert.True(t, start.Equal(date.Add(9*time.Hour)))
}
