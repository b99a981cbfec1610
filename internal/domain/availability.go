package domain

import (
	"sort"
	"time"
)

// AvailabilityWindow is one opening interval of a weekday.
// Bounds are kept as configured ("HH:MM"); unparseable ones are ignored by slot search.
type AvailabilityWindow struct {
	Open  string
	Close string
}

// AvailabilityTable maps ISO weekday (1=Monday..7=Sunday) to its opening windows in order
type AvailabilityTable map[int][]AvailabilityWindow

// ISOWeekday returns 1 for Monday through 7 for Sunday
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WindowsFor returns the opening windows of the weekday of date
func (t AvailabilityTable) WindowsFor(date time.Time) []AvailabilityWindow {
	return t[ISOWeekday(date)]
}

// Weekdays returns the configured weekdays in ascending order
func (t AvailabilityTable) Weekdays() []int {
	days := make([]int, 0, len(t))
	for day, windows := range t {
		if len(windows) > 0 {
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

// DefaultAvailability is the salon's weekly schedule; weekends are closed
func DefaultAvailability() AvailabilityTable {
	return AvailabilityTable{
		1: {{Open: "09:00", Close: "13:00"}, {Open: "14:00", Close: "17:00"}},
		2: {{Open: "09:00", Close: "17:00"}},
		3: {{Open: "09:00", Close: "17:00"}},
		4: {{Open: "09:00", Close: "17:00"}},
		5: {{Open: "09:00", Close: "15:00"}},
	}
}

// SlotSettings параметры поиска слотов, общие для поиска и проверки при записи
type SlotSettings struct {
	StepMinutes   int
	BufferMinutes int
	Availability  AvailabilityTable
}

// DefaultSlotSettings шаг 10 минут, буфер 5 минут, расписание салона
func DefaultSlotSettings() SlotSettings {
	return SlotSettings{
		StepMinutes:   DefaultSlotStepMinutes,
		BufferMinutes: DefaultBufferMinutes,
		Availability:  DefaultAvailability(),
	}
}
