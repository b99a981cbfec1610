package create_booking

import "errors"

var (
	// ErrNoServicesSelected возвращается, если выбранные зоны не дают ни одной позиции каталога
	ErrNoServicesSelected = errors.New("create_booking: no services selected")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда выбранное время пересекается с другой записью
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда интервал записи не помещается в окно работы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда время начала уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidSelection возвращается, если выбрано несколько зон одной исключающей группы
	ErrInvalidSelection = errors.New("create_booking: invalid zone selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
