package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/affirmed-honey/dulin2/internal/auth"
	"github.com/affirmed-honey/dulin2/internal/domain"
	"github.com/affirmed-honey/dulin2/internal/repository"
	apperrors "github.com/affirmed-honey/dulin2/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 10

// UserService implements account management and authentication.
type UserService struct {
	users      repository.UserRepository
	jwtManager *auth.JWTManager
	events     EventPublisher
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, jwtManager *auth.JWTManager, events EventPublisher, logger *slog.Logger) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
		events:     events,
		logger:     logger,
	}
}

// SignupInput holds the parameters for account creation.
type SignupInput struct {
	Email    string
	Name     string
	Password string
	Remember bool
}

// LoginInput holds the parameters for authentication.
type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

// Signup creates a credentialed account and returns it with a session token.
// An email already seen through guest checkout is claimed by attaching
// credentials to the existing login-less account; an email that can already
// log in is rejected.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case err == nil && existing.CanLogin():
		return nil, "", apperrors.AlreadyExists("user", "email", input.Email)

	case err == nil:
		if err := s.users.SetCredentials(ctx, existing.ID, input.Name, string(hash)); err != nil {
			return nil, "", fmt.Errorf("claim guest account: %w", err)
		}
		existing, err = s.users.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, "", fmt.Errorf("reload user: %w", err)
		}

	case errors.Is(err, apperrors.ErrNotFound):
		existing = &domain.User{
			Email:        input.Email,
			Name:         input.Name,
			PasswordHash: string(hash),
		}
		if err := s.users.Create(ctx, existing); err != nil {
			return nil, "", err
		}

	default:
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.jwtManager.Generate(existing.ID, existing.Email, input.Remember)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.events.PublishUserRegistered(ctx, existing); err != nil {
		s.logger.WarnContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", existing.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered", slog.Int64("user_id", existing.ID))

	return existing, token, nil
}

// Login authenticates a user and returns a session token. Accounts created
// through guest checkout have no credentials and cannot log in.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if !user.CanLogin() {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	token, err := s.jwtManager.Generate(user.ID, user.Email, input.Remember)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	return user, token, nil
}

// GetUser retrieves a user by identifier.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ChangePassword verifies the current password and stores a new one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.CanLogin() {
		return apperrors.Unauthorized("current password is incorrect")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ChangeEmail verifies the password and stores a new email address.
func (s *UserService) ChangeEmail(ctx context.Context, userID int64, email, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.CanLogin() {
		return nil, apperrors.Unauthorized("password is incorrect")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("password is incorrect")
	}

	if err := s.users.UpdateEmail(ctx, userID, email); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}
