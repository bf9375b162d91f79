package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admin-panel/internal/model"
	"admin-panel/internal/repository"

	"github.com/rs/zerolog"
)

func productNotFound(id int64) error {
	return model.NewDomainError(model.KindNotFound, model.ErrCodeProductNotFound,
		fmt.Sprintf("product with id %d not found", id))
}

func unknownCategory(id int64) error {
	return model.NewValidationError([]model.FieldError{{
		Field:   "categoryId",
		Message: fmt.Sprintf("category with id %d does not exist", id),
	}})
}

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List returns one page of products with their category summary.
func (s *productService) List(ctx context.Context, q model.ProductListQuery) (model.Page[model.Product], error) {
	if details := q.Validate(); details != nil {
		return model.Page[model.Product]{}, model.NewValidationError(details)
	}
	q.Search = strings.TrimSpace(q.Search)

	products, total, err := s.productRepo.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list products")
		return model.Page[model.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int64("total", total).
		Msg("listed products")

	return model.NewPage(products, q.ListQuery, total), nil
}

// Get returns a single product.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, productNotFound(id)
	}

	return product, nil
}

// Create stores a new product under an existing category.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	if err := s.requireCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Decimal,
		IsActive:    true,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil, unknownCategory(req.CategoryID)
		}
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("category_id", product.CategoryID).
		Msg("product created")

	return s.Get(ctx, product.ID)
}

// Update applies the fields present in req.
func (s *productService) Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if err := s.requireCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description.Set {
		product.Description = req.Description.Value
	}
	if req.Price != nil {
		product.Price = req.Price.Decimal
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	updated, err := s.productRepo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil, unknownCategory(product.CategoryID)
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if !updated {
		return nil, productNotFound(id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return s.Get(ctx, id)
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if !deleted {
		return productNotFound(id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return nil
}

func (s *productService) requireCategory(ctx context.Context, categoryID int64) error {
	exists, err := s.categoryRepo.Exists(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to check category")
		return fmt.Errorf("failed to check category: %w", err)
	}

	if !exists {
		s.logger.Debug().Int64("category_id", categoryID).Msg("product references missing category")
		return unknownCategory(categoryID)
	}

	return nil
}
