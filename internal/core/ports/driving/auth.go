package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// AuthService validates and issues admin bearer tokens
type AuthService interface {
	// ValidateToken validates a JWT token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// IssueToken signs a token for subject with the given role and lifetime
	IssueToken(subject string, role domain.Role, ttl time.Duration) (string, error)
}
