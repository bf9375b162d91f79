package repository

import (
	"context"
	"errors"
	"fmt"

	"admin-panel/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const categoryColumns = `c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at`

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// BeginTx starts a new database transaction.
func (r *categoryRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := beginTx(ctx, r.pool)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, err
	}
	return tx, nil
}

// List returns one page of categories with their product counts.
func (r *categoryRepository) List(ctx context.Context, q model.ListQuery) (items []model.CategoryListItem, total int64, err error) {
	var where whereClause
	if q.Search != "" {
		where.add(`c.name ILIKE ?`, likePattern(q.Search))
	}

	tx, err := beginSnapshot(ctx, r.pool)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin category list snapshot")
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	countQuery := `SELECT COUNT(*) FROM categories c ` + where.String()
	if err := tx.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("search", q.Search).Msg("failed to count categories")
		return nil, 0, fmt.Errorf("failed to count categories: %w", classify(err))
	}

	offset, ok := q.Offset()
	if !ok {
		return []model.CategoryListItem{}, total, nil
	}

	listQuery := `
		SELECT ` + categoryColumns + `,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS products_count
		FROM categories c
		` + where.String() + `
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ` + where.placeholder(q.Limit) + ` OFFSET ` + where.placeholder(offset)

	rows, err := tx.Query(ctx, listQuery, where.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to query categories")
		return nil, 0, fmt.Errorf("failed to query categories: %w", classify(err))
	}
	defer rows.Close()

	items = []model.CategoryListItem{}
	for rows.Next() {
		var c model.CategoryListItem
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.ProductsCount)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, 0, fmt.Errorf("error iterating categories: %w", classify(err))
	}

	return items, total, nil
}

// GetByID returns the category, or nil if none exists.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $1`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", classify(err))
	}

	return category, nil
}

// GetForUpdate returns the category locked for the rest of tx, or nil.
func (r *categoryRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories c WHERE c.id = $1 FOR UPDATE`

	category, err := scanCategory(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to lock category")
		return nil, fmt.Errorf("failed to lock category: %w", classify(err))
	}

	return category, nil
}

// Exists reports whether a category with the ID exists.
func (r *categoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to check category existence")
		return false, fmt.Errorf("failed to check category: %w", classify(err))
	}
	return exists, nil
}

// Create inserts the category and fills in its generated fields.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, category.Name, category.Description, category.IsActive).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", classify(err))
	}

	r.logger.Debug().Int64("category_id", category.ID).Msg("category created successfully")

	return nil
}

// CreateMany inserts categories in a single batch within tx.
func (r *categoryRepository) CreateMany(ctx context.Context, tx pgx.Tx, categories []*model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	query := `
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(query, c.Name, c.Description, c.IsActive)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for _, c := range categories {
		if err := results.QueryRow().Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create category")
			return fmt.Errorf("failed to create category %q: %w", c.Name, classify(err))
		}
	}

	r.logger.Debug().Int("count", len(categories)).Msg("categories created successfully")

	return nil
}

// Update writes name, description and active flag.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (bool, error) {
	query := `
		UPDATE categories
		SET name = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, category.ID, category.Name, category.Description, category.IsActive).
		Scan(&category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to update category")
		return false, fmt.Errorf("failed to update category: %w", classify(err))
	}

	return true, nil
}

// CountProducts counts the products referencing the category within tx.
func (r *categoryRepository) CountProducts(ctx context.Context, tx pgx.Tx, id int64) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to count category products")
		return 0, fmt.Errorf("failed to count category products: %w", classify(err))
	}
	return count, nil
}

// Delete removes the category within tx.
func (r *categoryRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("category %d is still referenced: %w", id, err)
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", classify(err))
	}

	r.logger.Debug().Int64("category_id", id).Msg("category deleted")

	return nil
}

// Count returns the number of stored categories.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", classify(err))
	}
	return count, nil
}
