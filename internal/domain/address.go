package domain

import "time"

type Address struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name" validate:"required,min=2,max=100"`
	Phone        string    `json:"phone" validate:"required"`
	AddressLine1 string    `json:"address_line1" validate:"required,min=5"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city" validate:"required"`
	State        string    `json:"state" validate:"required"`
	PostalCode   string    `json:"postal_code" validate:"required"`
	Country      string    `json:"country" validate:"required"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
