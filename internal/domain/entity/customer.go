package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer es un cliente del catálogo comercial.
type Customer struct {
	ID           string
	TenantID     *string
	CustomerCode string
	Name         string
	Phone        *string
	Email        *string
	Address      *string
	CreditLimit  *decimal.Decimal
	CreditDays   *int
	Status       string
	Type         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
