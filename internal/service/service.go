package service

import (
	"context"

	"admin-panel/internal/auth"
	"admin-panel/internal/model"
)

// AuthService defines login, registration and token checks.
type AuthService interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Register creates a new admin account.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserSummary, error)

	// Profile returns the user with the given ID.
	Profile(ctx context.Context, userID int64) (*model.User, error)

	// Authenticate verifies a bearer token and confirms its subject still exists.
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// CategoryService defines operations for category management.
type CategoryService interface {
	// List returns one page of categories with their product counts.
	List(ctx context.Context, q model.ListQuery) (model.Page[model.CategoryListItem], error)

	// Get returns a category together with its products.
	Get(ctx context.Context, id int64) (*model.CategoryDetail, error)

	// Create stores a new category.
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)

	// Update applies the fields present in req.
	Update(ctx context.Context, id int64, req *model.UpdateCategoryRequest) (*model.Category, error)

	// Delete removes a category that no product references.
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for product management.
type ProductService interface {
	// List returns one page of products with their category summary.
	List(ctx context.Context, q model.ProductListQuery) (model.Page[model.Product], error)

	// Get returns a single product.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Create stores a new product under an existing category.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies the fields present in req.
	Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(userID int64, email string) (string, error)
	Verify(token string) (*auth.Claims, error)
}
