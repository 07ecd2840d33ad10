package usecase

import (
	"context"
	"log/slog"
	"strings"

	"lightbnb/src/core/domain"
	"lightbnb/src/core/ports"
)

// UserService handles registration, login and lookups.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    *slog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log *slog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// Register validates the input, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	in.Password = hash

	user, err := s.repo.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login returns the user whose email and password match. Unknown emails and
// wrong passwords produce the same unauthorized error.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.Password, password); err != nil {
		if domain.IsUnauthorized(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("user_id", "must be positive")
	}
	return s.repo.GetUserByID(ctx, id)
}
