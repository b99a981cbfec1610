package clients

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	ReplaceAll(ctx context.Context, clients []*domain.Client) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
