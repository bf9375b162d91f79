package model

import "time"

// Category groups products.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryListItem is a category row in a list, with its product count.
type CategoryListItem struct {
	Category
	ProductsCount int64 `json:"productsCount" db:"products_count"`
}

// CategoryDetail is a single category together with its products.
type CategoryDetail struct {
	Category
	Products []Product `json:"products"`
}

// CategorySummary is the short category form embedded in products.
type CategorySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
