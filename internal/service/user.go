// This file implements the user service: login and account management.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/repository"
)

// BcryptCost is the work factor for password hashing.
const BcryptCost = 12

// UserStore is the persistence contract the user service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// RegisterUserParams contains validated parameters for creating an account.
type RegisterUserParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService defines account operations.
type UserService interface {
	// Login authenticates by email and password and returns the user.
	// Failures are uniformly EUNAUTHORIZED to prevent email enumeration.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Register creates a new account.
	Register(ctx context.Context, params RegisterUserParams) (*domain.User, error)

	// GetByID retrieves one user.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	store  UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, logger *slog.Logger) UserService {
	return &userService{store: store, logger: logger}
}

// Login authenticates a user by email and password.
//
// Security considerations:
//   - Constant-time password comparison via bcrypt.
//   - A dummy comparison runs when the email is unknown so both paths take
//     similar time.
//   - One generic error message for unknown email, bad password, and
//     deactivated accounts.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	const op = "user.login"

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			dummyHash := "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW" // bcrypt hash of "dummy"
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.Errorf(domain.EUNAUTHORIZED, op, "invalid email or password")
		}
		return nil, domain.Internal(err, op, "failed to retrieve user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.Errorf(domain.EUNAUTHORIZED, op, "invalid email or password")
	}

	if !user.Active {
		return nil, domain.Errorf(domain.EUNAUTHORIZED, op, "invalid email or password")
	}

	user.PasswordHash = ""
	s.logger.Info("user logged in", "user", user.ID)
	return user, nil
}

// Register creates a new account.
func (s *userService) Register(ctx context.Context, params RegisterUserParams) (*domain.User, error) {
	const op = "user.register"

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid(op, "a valid email is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, domain.Invalid(op, "name is required")
	}
	if len(params.Password) < 8 {
		return nil, domain.Invalid(op, "password must be at least 8 characters")
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		// Hash anyway so the duplicate path is not observably faster.
		_, _ = bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
		return nil, domain.Errorf(domain.ECONFLICT, op, "email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, domain.Internal(err, op, "failed to check email availability")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(domain.NormalizeRole(params.Role)),
		Active:       true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, domain.Errorf(domain.ECONFLICT, op, "email already registered")
		}
		return nil, domain.Internal(err, op, "failed to create user")
	}

	user.PasswordHash = ""
	s.logger.Info("user registered", "user", user.ID, "role", user.Role)
	return user, nil
}

// GetByID retrieves one user.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "user.get"

	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.NotFound(op, "user", id.String())
		}
		return nil, domain.Internal(err, op, "failed to load user")
	}
	user.PasswordHash = ""
	return user, nil
}
