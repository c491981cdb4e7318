package driven

import "github.com/custodia-labs/legislativas/internal/core/domain"

// AuthAdapter handles token cryptographic operations.
type AuthAdapter interface {
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
