package archive_appointments

import "time"

// Request модель запроса на архивацию
type Request struct {
	Before *time.Time // Дата отсечения включительно, nil = сегодня
}

// Response результат архивации
type Response struct {
	Before   time.Time
	Archived int
	IDs      []string
}
