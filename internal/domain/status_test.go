package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"confirmed to rescheduled", StatusConfirmed, StatusRescheduled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to no-show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to confirmed", StatusConfirmed, StatusConfirmed, false},
		{"rescheduled again", StatusRescheduled, StatusRescheduled, true},
		{"rescheduled to completed", StatusRescheduled, StatusCompleted, true},
		{"rescheduled back to confirmed", StatusRescheduled, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no-show is terminal", StatusNoShow, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusRescheduled.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("No-show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestAppointment_OccupiesSlot(t *testing.T) {
	for _, s := range AllStatuses {
		a := Appointment{Status: s}
		want := s != StatusCancelled && s != StatusNoShow
		assert.Equal(t, want, a.OccupiesSlot(), s)
	}
}
