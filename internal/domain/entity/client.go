package entity

import "time"

// Client cliente ya convertido (a diferencia de Lead, que es una oportunidad).
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
