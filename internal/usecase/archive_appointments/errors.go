package archive_appointments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате отсечения
	ErrInvalidInput = errors.New("archive_appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("archive_appointments: internal error")
)
