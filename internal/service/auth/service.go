package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/pkg/config"
	"github.com/datelohan/projetorh/pkg/crypto"
	jwtpkg "github.com/datelohan/projetorh/pkg/jwt"
)

var (
	// ErrInvalidCredentials covers unknown email, missing hash and wrong
	// password alike, so login never reveals which one failed.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInactiveUser rejects a deactivated account even with correct credentials.
	ErrInactiveUser = errors.New("auth: inactive account")
	// ErrEmailTaken signals a registration against an existing email.
	ErrEmailTaken = errors.New("auth: email already registered")
)

// Service handles authentication workflows.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// RegisterInput carries the fields accepted by self-registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Active   *bool
}

// Login authenticates an account and returns it with a fresh token. The
// checks run in a fixed order: existence and hash presence, then the active
// flag, then the password itself.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if !user.Active {
		return nil, "", ErrInactiveUser
	}
	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}
	token, err := jwtpkg.Sign(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Register creates an account and returns it with a fresh token. An
// unrecognized role falls back to EMPLOYEE; active defaults to true.
func (s Service) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	role := domain.Role(input.Role)
	if !role.Valid() {
		role = domain.RoleEmployee
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// the pre-check races with concurrent registrations; the unique
		// constraint is the authority
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := jwtpkg.Sign(user.ID, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Authenticate verifies a bearer token and returns its subject. No account
// lookup happens here: a token for a deleted account still authenticates,
// and the profile endpoint reports the missing account as not found.
func (s Service) Authenticate(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", jwtpkg.ErrTokenInvalid
	}
	return jwtpkg.Verify(trimmed, s.cfg.JWTSecret)
}

// Profile returns the account for an authenticated subject, including the
// linked employee summary.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
