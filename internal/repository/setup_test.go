package repository

import (
	"context"
	"testing"
	"time"

	"admin-panel/internal/database"
	"admin-panel/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	return pool
}

// seedCategory inserts a category with an explicit creation time.
func seedCategory(t *testing.T, pool *pgxpool.Pool, name string, createdAt time.Time) model.Category {
	t.Helper()

	c := model.Category{Name: name, IsActive: true}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO categories (name, created_at, updated_at) VALUES ($1, $2, $2) RETURNING id, created_at, updated_at`,
		name, createdAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	require.NoError(t, err)
	return c
}

// seedProduct inserts a product with an explicit creation time.
func seedProduct(t *testing.T, pool *pgxpool.Pool, categoryID int64, name string, price string, createdAt time.Time) model.Product {
	t.Helper()

	p := model.Product{CategoryID: categoryID, Name: name, Price: decimal.RequireFromString(price), IsActive: true}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (category_id, name, price, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		categoryID, name, p.Price, createdAt,
	).Scan(&p.ID)
	require.NoError(t, err)
	return p
}
