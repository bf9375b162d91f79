package repository

import (
	"context"

	"admin-panel/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines data access for administrator accounts.
type UserRepository interface {
	// GetByEmail returns the user with the given email, or nil if none exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID returns the user with the given ID, or nil if none exists.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// Create inserts the user and fills in its generated fields.
	// Returns model.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// Count returns the number of stored users.
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// List returns one page of categories with their product counts, and the
	// total number of categories matching the query.
	List(ctx context.Context, q model.ListQuery) ([]model.CategoryListItem, int64, error)

	// GetByID returns the category, or nil if none exists.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// GetForUpdate returns the category locked for the rest of tx, or nil.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Category, error)

	// Exists reports whether a category with the ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts the category and fills in its generated fields.
	Create(ctx context.Context, category *model.Category) error

	// CreateMany inserts categories in a single batch within tx.
	CreateMany(ctx context.Context, tx pgx.Tx, categories []*model.Category) error

	// Update writes name, description and active flag. Returns false if the
	// category no longer exists.
	Update(ctx context.Context, category *model.Category) (bool, error)

	// CountProducts counts the products referencing the category within tx.
	CountProducts(ctx context.Context, tx pgx.Tx, id int64) (int64, error)

	// Delete removes the category within tx.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error

	// Count returns the number of stored categories.
	Count(ctx context.Context) (int64, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	// List returns one page of products with their category summary, and the
	// total number of products matching the query.
	List(ctx context.Context, q model.ProductListQuery) ([]model.Product, int64, error)

	// ListByCategory returns every product of a category, newest first.
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)

	// GetByID returns the product with its category summary, or nil.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts the product and fills in its generated fields.
	// Returns model.ErrCategoryNotFound if the category vanished meanwhile.
	Create(ctx context.Context, product *model.Product) error

	// CreateMany inserts products in a single batch within tx.
	CreateMany(ctx context.Context, tx pgx.Tx, products []*model.Product) error

	// Update writes every mutable column. Returns false if the product no
	// longer exists.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes the product. Returns false if it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int64, error)
}
