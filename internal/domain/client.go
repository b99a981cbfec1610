package domain

import (
	"strings"
	"time"
)

// Client is a salon customer identified by a contact handle (WhatsApp number)
type Client struct {
	ID     string
	Name   string
	Handle string
	Email  string
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims fields and fills ID and Handle from each other when one is missing
func (c *Client) Normalize() {
	c.ID = strings.TrimSpace(c.ID)
	c.Handle = strings.TrimSpace(c.Handle)
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)

	if c.ID == "" {
		c.ID = c.Handle
	}
	if c.Handle == "" {
		c.Handle = c.ID
	}
}
