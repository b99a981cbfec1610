package models

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// ServiceEntryDTO строка каталога
type ServiceEntryDTO struct {
	Category        string `json:"category"`
	Zone            string `json:"zone"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           int    `json:"price"`
}

// CatalogResponse каталог целиком
type CatalogResponse struct {
	Services []ServiceEntryDTO `json:"services"`
}

// ReplaceCatalogRequest замена каталога (сохранение таблицы администратором)
type ReplaceCatalogRequest struct {
	Services []ServiceEntryDTO `json:"services"`
}

// CategoriesResponse список категорий в порядке показа
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ZoneGroupDTO группа взаимоисключающих зон
type ZoneGroupDTO struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// ZoneOptionsResponse варианты выбора зон категории
type ZoneOptionsResponse struct {
	Category string         `json:"category"`
	Groups   []ZoneGroupDTO `json:"groups"`
	Zones    []string       `json:"zones"` // свободные зоны
}

// QuoteRequest запрос расчёта длительности и цены.
// Либо Zones (готовый список), либо GroupChoices + Extras (выбор как в мастере записи).
type QuoteRequest struct {
	Category     string            `json:"category"`
	Zones        []string          `json:"zones,omitempty"`
	GroupChoices map[string]string `json:"groupChoices,omitempty"`
	Extras       []string          `json:"extras,omitempty"`
}

// QuoteResponse итог выбора
type QuoteResponse struct {
	Category        string   `json:"category"`
	Zones           []string `json:"zones"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           int      `json:"price"`
}

// UsesGroups true, если выбор задан через группы
func (r *QuoteRequest) UsesGroups() bool {
	return len(r.GroupChoices) > 0 || len(r.Extras) > 0
}

// FromDomainCatalog конвертирует каталог в DTO
func FromDomainCatalog(entries []domain.ServiceEntry) *CatalogResponse {
	resp := &CatalogResponse{Services: make([]ServiceEntryDTO, 0, len(entries))}
	for _, e := range entries {
		resp.Services = append(resp.Services, ServiceEntryDTO{
			Category:        e.Category,
			Zone:            e.Zone,
			DurationMinutes: e.DurationMinutes,
			Price:           e.Price,
		})
	}
	return resp
}

// ToDomainCatalog конвертирует DTO в domain модель
func ToDomainCatalog(dtos []ServiceEntryDTO) []domain.ServiceEntry {
	entries := make([]domain.ServiceEntry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, domain.ServiceEntry{
			Category:        d.Category,
			Zone:            d.Zone,
			DurationMinutes: d.DurationMinutes,
			Price:           d.Price,
		})
	}
	return entries
}

// FromZoneOptions конвертирует варианты выбора зон
func FromZoneOptions(opts scheduling.ZoneOptions) *ZoneOptionsResponse {
	resp := &ZoneOptionsResponse{
		Category: opts.Category,
		Groups:   make([]ZoneGroupDTO, 0, len(opts.Groups)),
		Zones:    opts.Loose,
	}
	for _, g := range opts.Groups {
		resp.Groups = append(resp.Groups, ZoneGroupDTO{Name: g.Name, Members: g.Members})
	}
	return resp
}
