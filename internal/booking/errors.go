package booking

import "errors"

var (
	// ErrInvalidTransition событие недопустимо в текущем шаге мастера
	ErrInvalidTransition = errors.New("booking: invalid transition")

	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("booking: session not found")

	// ErrNoZonesSelected не выбрано ни одной зоны
	ErrNoZonesSelected = errors.New("booking: no zones selected")

	// ErrInvalidSelection некорректный выбор зон в группах
	ErrInvalidSelection = errors.New("booking: invalid zone selection")

	// ErrInvalidDate некорректная дата
	ErrInvalidDate = errors.New("booking: invalid date")

	// ErrDateInPast дата раньше сегодняшней
	ErrDateInPast = errors.New("booking: date is in the past")

	// ErrSlotUnavailable выбранное время не входит в список свободных слотов
	ErrSlotUnavailable = errors.New("booking: slot is not available")

	// ErrMissingDetails не указано имя или контакт
	ErrMissingDetails = errors.New("booking: name and contact are required")
)
