package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List возвращает каталог в порядке хранения
func (s *Service) List(ctx context.Context) (*models.CatalogResponse, error) {
	entries, err := s.load(ctx, "List")
	if err != nil {
		return nil, err
	}
	return models.FromDomainCatalog(entries), nil
}

// Categories возвращает категории: сначала Descartable и Láser, затем остальные
func (s *Service) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	entries, err := s.load(ctx, "Categories")
	if err != nil {
		return nil, err
	}
	return &models.CategoriesResponse{Categories: scheduling.OrderCategories(entries)}, nil
}

// Options возвращает группы и свободные зоны категории
func (s *Service) Options(ctx context.Context, category string) (*models.ZoneOptionsResponse, error) {
	entries, err := s.load(ctx, "Options")
	if err != nil {
		return nil, err
	}

	opts := scheduling.BuildZoneOptions(entries, category)
	if len(opts.Groups) == 0 && len(opts.Loose) == 0 {
		s.logger.Warn("Options: category=%q not found", category)
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}

	return models.FromZoneOptions(opts), nil
}

// Quote считает длительность и цену выбранных зон
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Quote: category=%q zones=%v groups=%v extras=%v", req.Category, req.Zones, req.GroupChoices, req.Extras)

	entries, err := s.load(ctx, "Quote")
	if err != nil {
		return nil, err
	}

	opts := scheduling.BuildZoneOptions(entries, req.Category)
	zones := req.Zones
	if req.UsesGroups() {
		zones, err = scheduling.BuildZoneSelection(opts, req.GroupChoices, req.Extras)
	} else {
		err = opts.CheckExclusive(zones)
	}
	if err != nil {
		s.logger.Warn("Quote: invalid selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	duration := scheduling.ComputeDuration(entries, req.Category, zones)
	if duration <= 0 {
		return nil, ErrNoServicesSelected
	}

	return &models.QuoteResponse{
		Category:        req.Category,
		Zones:           zones,
		DurationMinutes: duration,
		Price:           scheduling.ComputePrice(entries, req.Category, zones),
	}, nil
}

// ReplaceAll заменяет каталог целиком.
// Ключи обрезаются, строки без категории или зоны отбрасываются, при повторе ключа остаётся первая.
func (s *Service) ReplaceAll(ctx context.Context, req *models.ReplaceCatalogRequest) (*models.CatalogResponse, error) {
	for i, e := range req.Services {
		if e.DurationMinutes < 0 || e.Price < 0 {
			s.logger.Warn("ReplaceAll: negative value in row %d (%s/%s)", i, e.Category, e.Zone)
			return nil, fmt.Errorf("%w: row %d: duration and price must not be negative", ErrInvalidInput, i)
		}
		if e.DurationMinutes > domain.MaxDurationMinutes {
			return nil, fmt.Errorf("%w: row %d: duration exceeds %d minutes", ErrInvalidInput, i, domain.MaxDurationMinutes)
		}
	}

	entries := domain.NormalizeCatalog(models.ToDomainCatalog(req.Services))

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.catalogRepo.ReplaceAll(ctx, entries)
	})
	if err != nil {
		s.logger.Error("ReplaceAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceAll: catalog saved, rows=%d (received %d)", len(entries), len(req.Services))
	return models.FromDomainCatalog(entries), nil
}

func (s *Service) load(ctx context.Context, op string) ([]domain.ServiceEntry, error) {
	entries, err := s.catalogRepo.List(ctx)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return entries, nil
}
