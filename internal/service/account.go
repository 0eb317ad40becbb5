package service

import (
	"context"
	"fmt"

	"go-users-backend/internal/domain"
)

type AccountService struct {
	repo domain.UserRepository
}

func NewAccountService(repo domain.UserRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register pre-checks the username, then inserts. The pre-check is best
// effort; a concurrent insert between check and create still comes back as
// ErrDuplicateUser from the repo's unique-index handling.
func (s *AccountService) Register(ctx context.Context, username, password string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateUser
	}
	return s.repo.Create(ctx, &domain.User{Username: username, Password: password})
}

// Authenticate compares the supplied password byte-for-byte against the
// stored one. Missing user and wrong password collapse into the same error.
// No token or session is produced; the greeting is the whole payload.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || u.Password != password {
		return "", domain.ErrInvalidCredentials
	}
	return fmt.Sprintf("welcome, %s", u.Username), nil
}
