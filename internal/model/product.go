package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalogue.
type Product struct {
	ID          int64            `json:"id" db:"id"`
	CategoryID  int64            `json:"categoryId" db:"category_id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description" db:"description"`
	Price       decimal.Decimal  `json:"price" db:"price"`
	Stock       int              `json:"stock" db:"stock"`
	IsActive    bool             `json:"isActive" db:"is_active"`
	Category    *CategorySummary `json:"category,omitempty" db:"-"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}
