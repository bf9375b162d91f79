package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admin-panel/internal/auth"
	"admin-panel/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UserStore is the user data access the seeder needs.
type UserStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *model.User) error
}

// CategoryStore is the category data access the seeder needs.
type CategoryStore interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	Count(ctx context.Context) (int64, error)
	CreateMany(ctx context.Context, tx pgx.Tx, categories []*model.Category) error
}

// ProductStore is the product data access the seeder needs.
type ProductStore interface {
	CreateMany(ctx context.Context, tx pgx.Tx, products []*model.Product) error
}

// Options configures what the seeder creates.
type Options struct {
	File          string
	AdminEmail    string
	AdminPassword string
	AdminName     string
	BcryptCost    int
}

// Seeder bootstraps an empty database with an administrator and a sample
// catalogue. Every step is skipped when its table already holds rows, so
// running it on every start is safe.
type Seeder struct {
	users      UserStore
	categories CategoryStore
	products   ProductStore
	loader     Loader
	opts       Options
	logger     zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(
	users UserStore,
	categories CategoryStore,
	products ProductStore,
	loader Loader,
	opts Options,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:      users,
		categories: categories,
		products:   products,
		loader:     loader,
		opts:       opts,
		logger:     logger.With().Str("component", "seeder").Logger(),
	}
}

// Run seeds the administrator and then the catalogue.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	return s.seedCatalogue(ctx)
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int64("users", count).Msg("users present, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(s.opts.AdminPassword, s.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(s.opts.AdminEmail)),
		PasswordHash: hash,
		Name:         s.opts.AdminName,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			s.logger.Debug().Str("email", admin.Email).Msg("admin created concurrently")
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", admin.ID).
		Str("email", admin.Email).
		Msg("admin user seeded")

	return nil
}

// seedCatalogue inserts the document's categories and products in one
// transaction. It only runs against an empty categories table; products
// cannot exist without a category, so that table is empty too.
func (s *Seeder) seedCatalogue(ctx context.Context) (err error) {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int64("categories", count).Msg("categories present, skipping catalogue seed")
		return nil
	}

	doc, err := s.loader.Load(ctx, s.opts.File)
	if err != nil {
		return fmt.Errorf("failed to load seed document: %w", err)
	}

	categories := doc.categories()
	if len(categories) == 0 {
		s.logger.Info().Msg("seed document has no categories")
		return nil
	}

	tx, err := s.categories.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback seed transaction")
			}
		}
	}()

	if err = s.categories.CreateMany(ctx, tx, categories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := doc.products(categories)
	if err = s.products.CreateMany(ctx, tx, products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	s.logger.Info().
		Int("categories", len(categories)).
		Int("products", len(products)).
		Msg("catalogue seeded")

	return nil
}
