package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/core/port"
	"github.com/arklim/contact-platform/internal/infra/security"
	"github.com/arklim/contact-platform/internal/repository"
	"github.com/arklim/contact-platform/internal/validation"
)

// UserService handles registration, login, profile updates, and session
// token resolution.
type UserService struct {
	users port.UserRepository
	log   *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(users port.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, log: log}
}

// Register creates a new account. The username must not be taken and the
// password is stored only as an Argon2id hash.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*UserResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	total, err := s.users.CountByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("count users by username: %w", err)
	}
	if total != 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("username", user.Username))

	return toUserResource(user), nil
}

// Login verifies credentials and issues a fresh opaque session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, input LoginUserInput) (*UserResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("login rejected: unknown username", zap.String("username", input.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Warn("login rejected: wrong password", zap.String("username", input.Username))
		return nil, ErrInvalidCredentials
	}

	token := security.NewSessionToken()
	if err := s.users.UpdateToken(ctx, user.Username, &token); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	s.log.Info("user logged in", zap.String("username", user.Username))

	resource := toUserResource(*user)
	resource.Token = token
	return resource, nil
}

// Current returns the resource for an already-authenticated identity.
func (s *UserService) Current(user domain.User) *UserResource {
	return toUserResource(user)
}

// Update applies a partial profile update. Only the fields present in the
// input are persisted; a new password is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, user domain.User, input UpdateUserInput) (*UserResource, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("user updated", zap.String("username", user.Username))

	return toUserResource(user), nil
}

// Logout clears the stored session token so the old token no longer
// resolves to an identity.
func (s *UserService) Logout(ctx context.Context, user domain.User) error {
	if err := s.users.UpdateToken(ctx, user.Username, nil); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}

	s.log.Info("user logged out", zap.String("username", user.Username))
	return nil
}

// ResolveToken maps an opaque session token back to its user. Used by the
// auth guard on every protected request.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	return user, nil
}
