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

const productSelect = `
	SELECT p.id, p.category_id, p.name, p.description, p.price, p.stock, p.is_active,
		p.created_at, p.updated_at, c.id, c.name
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var c model.CategorySummary
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", classify(err))
	}

	return products, nil
}

// List returns one page of products with their category summary.
func (r *productRepository) List(ctx context.Context, q model.ProductListQuery) ([]model.Product, int64, error) {
	var where whereClause
	if q.Search != "" {
		where.add(`p.name ILIKE ?`, likePattern(q.Search))
	}
	if q.CategoryID != nil {
		where.add(`p.category_id = ?`, *q.CategoryID)
	}

	tx, err := beginSnapshot(ctx, r.pool)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin product list snapshot")
		return nil, 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var total int64
	countQuery := `SELECT COUNT(*) FROM products p ` + where.String()
	if err := tx.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("search", q.Search).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", classify(err))
	}

	offset, ok := q.Offset()
	if !ok {
		return []model.Product{}, total, nil
	}

	listQuery := productSelect + where.String() + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ` + where.placeholder(q.Limit) + ` OFFSET ` + where.placeholder(offset)

	rows, err := tx.Query(ctx, listQuery, where.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", classify(err))
	}

	products, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListByCategory returns every product of a category, newest first.
func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := productSelect + `
		WHERE p.category_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to query category products")
		return nil, fmt.Errorf("failed to query category products: %w", classify(err))
	}

	return r.collect(rows)
}

// GetByID returns the product with its category summary, or nil.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", classify(err))
	}

	return product, nil
}

const insertProduct = `
	INSERT INTO products (category_id, name, description, price, stock, is_active)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
`

// Create inserts the product and fills in its generated fields.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	err := r.pool.QueryRow(ctx, insertProduct,
		product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			r.logger.Debug().Int64("category_id", product.CategoryID).Msg("product references missing category")
			return model.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", classify(err))
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created successfully")

	return nil
}

// CreateMany inserts products in a single batch within tx.
func (r *productRepository) CreateMany(ctx context.Context, tx pgx.Tx, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(insertProduct, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.IsActive)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for _, p := range products {
		if err := results.QueryRow().Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			r.logger.Error().
				Err(err).
				Str("name", p.Name).
				Int64("category_id", p.CategoryID).
				Msg("failed to create product")
			return fmt.Errorf("failed to create product %q: %w", p.Name, classify(err))
		}
	}

	r.logger.Debug().Int("count", len(products)).Msg("products created successfully")

	return nil
}

// Update writes every mutable column.
func (r *productRepository) Update(ctx context.Context, product *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, stock = $6,
			is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Description, product.Price, product.Stock, product.IsActive,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isPgError(err, pgForeignKeyViolation) {
			return false, model.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", classify(err))
	}

	return true, nil
}

// Delete removes the product.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", classify(err))
	}

	return tag.RowsAffected() > 0, nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", classify(err))
	}
	return count, nil
}
