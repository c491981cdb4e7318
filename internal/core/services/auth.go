package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	authAdapter driven.AuthAdapter
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(authAdapter driven.AuthAdapter) driving.AuthService {
	return &authService{
		authAdapter: authAdapter,
		now:         time.Now,
	}
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, err
		}
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if s.now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}

// IssueToken signs a token for subject with the given role and lifetime
func (s *authService) IssueToken(subject string, role domain.Role, ttl time.Duration) (string, error) {
	if subject == "" || ttl <= 0 {
		return "", domain.ErrInvalidInput
	}
	switch role {
	case domain.RoleAdmin, domain.RoleViewer:
	default:
		return "", domain.ErrInvalidInput
	}

	now := s.now()
	return s.authAdapter.GenerateToken(&domain.TokenClaims{
		Subject:   subject,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
}
