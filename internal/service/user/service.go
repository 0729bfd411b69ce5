package user

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/datelohan/projetorh/internal/domain"
	"github.com/datelohan/projetorh/internal/repository"
	"github.com/datelohan/projetorh/pkg/crypto"
)

var (
	// ErrInvalidRole rejects a role outside the closed enumeration. The
	// admin CRUD is stricter than self-registration: no silent fallback.
	ErrInvalidRole = errors.New("user: invalid role")
	// ErrEmailTaken signals a duplicate email.
	ErrEmailTaken = errors.New("user: email already registered")
)

// Service handles user account administration.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

// CreateInput carries the fields accepted by account creation.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Active   *bool
}

// UpdateInput carries the fields accepted by account update. Password is
// optional; when present the stored hash is replaced.
type UpdateInput struct {
	Name     string
	Email    string
	Role     string
	Active   *bool
	Password string
}

// List returns all accounts with their employee summaries.
func (s Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Create registers an account through the admin surface.
func (s Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if _, err := s.users.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
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
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Update mutates an account. The active flag only changes when provided and
// a new password replaces the stored hash.
func (s Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	current, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Name = input.Name
	current.Email = input.Email
	current.Role = role
	if input.Active != nil {
		current.Active = *input.Active
	}
	current.PasswordHash = ""
	if input.Password != "" {
		hash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, current); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info("user updated", "user_id", id)
	return s.users.GetUserByID(ctx, id)
}

// Delete removes an account.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
