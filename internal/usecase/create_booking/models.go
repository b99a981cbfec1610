package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Category     string           // Категория услуги
	Zones        []string         // Выбранные зоны
	Date         time.Time        // Дата записи (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	ClientName   string           // Имя клиента
	ClientHandle string           // Контакт клиента (WhatsApp), по нему ищется клиент
	ClientEmail  string           // Email (опционально)
	Notes        string           // Заметки к записи (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              string
	ClientID        string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Category        string
	Zones           []string
	DurationMinutes int
	Price           int
	Status          string
	Notes           string

	CreatedAt time.Time
}
