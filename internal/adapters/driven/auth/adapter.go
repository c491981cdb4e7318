package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure Adapter implements AuthAdapter
var _ driven.AuthAdapter = (*Adapter)(nil)

// Issuer is set on every token and required when parsing
const Issuer = "legislativas"

// jwtClaims wraps domain.TokenClaims for JWT compatibility
type jwtClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Adapter signs and verifies HS256 JWTs
type Adapter struct {
	jwtSecret []byte
}

// NewAdapter creates a new auth adapter with the given JWT secret
func NewAdapter(jwtSecret string) *Adapter {
	return &Adapter{
		jwtSecret: []byte(jwtSecret),
	}
}

// GenerateToken creates a signed JWT from domain claims
func (a *Adapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	jc := jwtClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(time.Unix(claims.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(claims.ExpiresAt, 0)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jc)
	return token.SignedString(a.jwtSecret)
}

// ParseToken validates a JWT and extracts domain claims.
// Expired tokens return domain.ErrTokenExpired.
func (a *Adapter) ParseToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	if claims, ok := token.Claims.(*jwtClaims); ok && token.Valid {
		out := &domain.TokenClaims{
			Subject: claims.Subject,
			Role:    claims.Role,
		}
		if claims.IssuedAt != nil {
			out.IssuedAt = claims.IssuedAt.Unix()
		}
		if claims.ExpiresAt != nil {
			out.ExpiresAt = claims.ExpiresAt.Unix()
		}
		return out, nil
	}

	return nil, domain.ErrTokenInvalid
}
