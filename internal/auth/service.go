package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/gudang-erp/gudang-erp/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	issuer *TokenIssuer
}

// NewService constructs a new Service.
func NewService(repo Repository, issuer *TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
