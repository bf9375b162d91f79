package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admin-panel/internal/auth"
	"admin-panel/internal/model"
	"admin-panel/internal/repository"

	"github.com/rs/zerolog"
)

var (
	errInvalidToken = model.NewDomainError(model.KindUnauthorised, model.ErrCodeUnauthorised, "invalid or expired token")
	errUserGone     = model.NewDomainError(model.KindUnauthorised, model.ErrCodeUnauthorised, "user not found")
)

// authService implements AuthService.
type authService struct {
	userRepo   repository.UserRepository
	tokens     TokenManager
	bcryptCost int
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenManager,
	bcryptCost int,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login exchanges credentials for an access token. Unknown emails and wrong
// passwords fail identically.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	email := normaliseEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user for login")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if user == nil {
		s.logger.Debug().Str("email", email).Msg("login for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	ok, err := auth.ComparePassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("stored password hash is unusable")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if !ok {
		s.logger.Debug().Int64("user_id", user.ID).Msg("login with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &model.LoginResponse{
		AccessToken: token,
		User:        user.Summary(),
	}, nil
}

// Register creates a new admin account.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserSummary, error) {
	if details := req.Validate(); details != nil {
		return nil, model.NewValidationError(details)
	}

	email := normaliseEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check existing user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	if existing != nil {
		s.logger.Debug().Str("email", email).Msg("email already registered")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.ErrEmailTaken
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")

	summary := user.Summary()
	return &summary, nil
}

// Profile returns the user with the given ID.
func (s *authService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if user == nil {
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

// Authenticate verifies a bearer token and confirms its subject still exists.
func (s *authService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("token rejected")
		return auth.Identity{}, errInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return auth.Identity{}, errInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to load token subject")
		return auth.Identity{}, fmt.Errorf("failed to authenticate: %w", err)
	}

	if user == nil {
		s.logger.Debug().Int64("user_id", userID).Msg("token subject no longer exists")
		return auth.Identity{}, errUserGone
	}

	return auth.Identity{UserID: user.ID, Email: user.Email}, nil
}
