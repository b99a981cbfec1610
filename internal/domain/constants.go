package domain

// Slot search defaults
const (
	DefaultSlotStepMinutes = 10
	DefaultBufferMinutes   = 5
)

// Business validation constants
const (
	MaxDurationMinutes  = 480 // 8 hours
	MaxNotesLength      = 500
	AppointmentIDLength = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ZonesSeparator separates zone names in the persisted display string
const ZonesSeparator = ", "
