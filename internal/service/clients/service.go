package clients

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients/models"
)

// Service сервис для работы с клиентами
type Service struct {
	clientRepo ClientRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// List возвращает всех клиентов
func (s *Service) List(ctx context.Context) (*models.ClientListResponse, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClients(clients), nil
}

// ReplaceAll заменяет список клиентов.
// Пустой ID берётся из контакта и наоборот; строки без обоих пропускаются, повторный ID запрещён.
func (s *Service) ReplaceAll(ctx context.Context, req *models.ReplaceClientsRequest) (*models.ClientListResponse, error) {
	clients := models.ToDomainClients(req.Clients)

	result := make([]*domain.Client, 0, len(clients))
	seen := make(map[string]struct{}, len(clients))
	for i, c := range clients {
		c.Normalize()
		if c.ID == "" {
			s.logger.Warn("ReplaceAll: row %d has neither id nor handle, skipped", i)
			continue
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate client id %q", ErrInvalidInput, c.ID)
		}
		seen[c.ID] = struct{}{}
		result = append(result, c)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.clientRepo.ReplaceAll(ctx, result)
	})
	if err != nil {
		s.logger.Error("ReplaceAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceAll: clients saved, rows=%d", len(result))
	return models.FromDomainClients(result), nil
}
