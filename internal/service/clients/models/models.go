package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ClientDTO клиент салона
type ClientDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"` // номер WhatsApp
	Email  string `json:"email,omitempty"`
	Notes  string `json:"notes,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ClientListResponse список клиентов
type ClientListResponse struct {
	Clients []ClientDTO `json:"clients"`
}

// ReplaceClientsRequest замена списка клиентов
type ReplaceClientsRequest struct {
	Clients []ClientDTO `json:"clients"`
}

// FromDomainClients конвертирует список клиентов в DTO
func FromDomainClients(clients []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{Clients: make([]ClientDTO, 0, len(clients))}
	for _, c := range clients {
		dto := ClientDTO{
			ID:     c.ID,
			Name:   c.Name,
			Handle: c.Handle,
			Email:  c.Email,
			Notes:  c.Notes,
		}
		if !c.CreatedAt.IsZero() {
			createdAt := c.CreatedAt
			dto.CreatedAt = &createdAt
		}
		if !c.UpdatedAt.IsZero() {
			updatedAt := c.UpdatedAt
			dto.UpdatedAt = &updatedAt
		}
		resp.Clients = append(resp.Clients, dto)
	}
	return resp
}

// ToDomainClients конвертирует DTO в domain модели
func ToDomainClients(dtos []ClientDTO) []*domain.Client {
	clients := make([]*domain.Client, 0, len(dtos))
	for _, d := range dtos {
		clients = append(clients, &domain.Client{
			ID:     d.ID,
			Name:   d.Name,
			Handle: d.Handle,
			Email:  d.Email,
			Notes:  d.Notes,
		})
	}
	return clients
}
