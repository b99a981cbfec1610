package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateSlots возвращает отсортированные без повторов времена начала, в которые
// можно записать услугу длительностью durationMinutes на дату date.
//
// Кандидаты строятся с шагом stepMinutes внутри каждого окна работы дня недели.
// Кандидат отбрасывается, если пересекается с записью этого дня (кроме Cancelled и NoShow),
// расширенной на bufferMinutes с обеих сторон. Если date совпадает с днём now,
// остаются только слоты, начинающиеся строго позже now.
//
// Некорректные входные данные дают пустой список, а не ошибку.
func GenerateSlots(
	date time.Time,
	durationMinutes int,
	appointments []*domain.Appointment,
	table domain.AvailabilityTable,
	stepMinutes int,
	bufferMinutes int,
	now time.Time,
) []types.TimeString {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return []types.TimeString{}
	}

	windows := table.WindowsFor(date)
	if len(windows) == 0 {
		return []types.TimeString{}
	}

	busy := busyIntervals(appointments, date)

	seen := make(map[int]struct{})
	starts := make([]int, 0)

	for _, w := range windows {
		opening, closing, ok := parseWindow(w)
		if !ok {
			continue
		}

		for current := opening; current+durationMinutes <= closing; current += stepMinutes {
			if conflicts(current, current+durationMinutes, busy, bufferMinutes) {
				continue
			}
			if _, dup := seen[current]; dup {
				continue
			}
			seen[current] = struct{}{}
			starts = append(starts, current)
		}
	}

	sort.Ints(starts)

	// Для сегодняшнего дня прошедшие и текущий момент не предлагаем
	isToday := domain.SameDay(date, now)

	result := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		if isToday && !atMinute(date, start).After(now) {
			continue
		}
		slot, err := types.FromMinutes(start)
		if err != nil {
			continue
		}
		result = append(result, slot)
	}

	return result
}

// Conflicts проверяет, пересекается ли интервал [start, end) на дату date
// с какой-либо занимающей слот записью с учётом буфера
func Conflicts(date time.Time, start, end types.TimeString, appointments []*domain.Appointment, bufferMinutes int) bool {
	s, err := start.Minutes()
	if err != nil {
		return false
	}
	e, err := end.Minutes()
	if err != nil {
		return false
	}
	return conflicts(s, e, busyIntervals(appointments, date), bufferMinutes)
}

// FitsWindow проверяет, что интервал [start, end) целиком лежит в одном из окон работы дня
func FitsWindow(date time.Time, start, end types.TimeString, table domain.AvailabilityTable) bool {
	s, err := start.Minutes()
	if err != nil {
		return false
	}
	e, err := end.Minutes()
	if err != nil {
		return false
	}

	for _, w := range table.WindowsFor(date) {
		opening, closing, ok := parseWindow(w)
		if !ok {
			continue
		}
		if s >= opening && e <= closing {
			return true
		}
	}
	return false
}

type interval struct {
	start int
	end   int
}

// busyIntervals отбирает записи дня, которые блокируют время.
// Записи с нечитаемым временем пропускаются.
func busyIntervals(appointments []*domain.Appointment, date time.Time) []interval {
	busy := make([]interval, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.OccupiesSlot() || !a.IsOn(date) {
			continue
		}
		start, end, ok := a.Interval()
		if !ok {
			continue
		}
		busy = append(busy, interval{start: start, end: end})
	}
	return busy
}

// conflicts: буфер расширяет кандидата, а не запись.
// Граничный случай cs-buffer == ae не является конфликтом.
func conflicts(cs, ce int, busy []interval, bufferMinutes int) bool {
	for _, b := range busy {
		if cs-bufferMinutes < b.end && b.start < ce+bufferMinutes {
			return true
		}
	}
	return false
}

func parseWindow(w domain.AvailabilityWindow) (opening, closing int, ok bool) {
	o, err := types.NewTimeStringFromString(w.Open)
	if err != nil {
		return 0, 0, false
	}
	c, err := types.NewTimeStringFromString(w.Close)
	if err != nil {
		return 0, 0, false
	}
	opening, _ = o.Minutes()
	closing, _ = c.Minutes()
	return opening, closing, true
}

func atMinute(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, date.Location())
}
