package catalog

import "errors"

var (
	// ErrCategoryNotFound возвращается, если в каталоге нет такой категории
	ErrCategoryNotFound = errors.New("category not found")

	// ErrNoServicesSelected возвращается, если выбранные зоны не дают ни одной услуги
	ErrNoServicesSelected = errors.New("no services selected")

	// ErrInvalidSelection возвращается при некорректном выборе зон в группах
	ErrInvalidSelection = errors.New("invalid zone selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
