package service

import (
	"context"
	"fmt"
	"strings"

	"admin-panel/internal/model"
	"admin-panel/internal/repository"

	"github.com/rs/zerolog"
)

func categoryNotFound(id int64) error {
	return model.NewDomainError(model.KindNotFound, model.ErrCodeCategoryNotFound,
		fmt.Sprintf("category with id %d not found", id))
}

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List returns one page of categories with their product counts.
func (s *categoryService) List(ctx context.Context, q model.ListQuery) (model.Page[model.CategoryListItem], error) {
	if details := q.Validate(); details != nil {
		return model.Page[model.CategoryListItem]{}, model.NewValidationError(details)
	}
	q.Search = strings.TrimSpace(q.Search)

	items, total, err := s.categoryRepo.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list categories")
		return model.Page[model.CategoryListItem]{}, fmt.Errorf("failed to list categories: %w", err)
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int64("total", total).
		Msg("listed categories")

	return model.NewPage(items, q, total), nil
}

// Get returns a category together with its products.
func (s *categoryService) Get(ctx context.Context, id int64) (*model.CategoryDetail, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByCategory(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to load category products")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &model.CategoryDetail{Category: *category, Products: products}, nil
}

// Create stores a new category.
func (s *categoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	category := &model.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error().Err(err).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category created")

	return category, nil
}

// Update applies the fields present in req.
func (s *categoryService) Update(ctx context.Context, id int64, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description.Set {
		category.Description = req.Description.Value
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// Deleted between the read and the write.
	if !updated {
		return nil, categoryNotFound(id)
	}

	s.logger.Info().Int64("category_id", id).Msg("category updated")

	return category, nil
}

// Delete removes a category, refusing while any product still references it.
// The category row stays locked between the count and the delete so a
// concurrent product insert cannot slip in.
func (s *categoryService) Delete(ctx context.Context, id int64) (err error) {
	tx, err := s.categoryRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	category, err := s.categoryRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if category == nil {
		return categoryNotFound(id)
	}

	count, err := s.categoryRepo.CountProducts(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if count > 0 {
		s.logger.Info().
			Int64("category_id", id).
			Int64("product_count", count).
			Msg("category delete blocked by products")
		return model.NewCategoryInUseError(category.Name, count)
	}

	if err = s.categoryRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")

	return nil
}

func (s *categoryService) find(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", id).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		s.logger.Debug().Int64("category_id", id).Msg("category not found")
		return nil, categoryNotFound(id)
	}

	return category, nil
}
