package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date     time.Time // Дата для получения слотов (без времени)
	Category string    // Категория услуги
	Zones    []string  // Выбранные зоны
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	Category        string             // Категория услуги
	Zones           []string           // Зоны, по которым считалась длительность
	DurationMinutes int                // Суммарная длительность услуги
	Price           int                // Суммарная цена
	Slots           []types.TimeString // Времена начала в порядке возрастания
}
