package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается, если дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrNoServicesSelected возвращается, если выбранные зоны не дают ни одной позиции каталога
	ErrNoServicesSelected = errors.New("get_available_slots: no services selected")

	// ErrInvalidSelection возвращается, если выбрано несколько зон одной исключающей группы
	ErrInvalidSelection = errors.New("get_available_slots: invalid zone selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
