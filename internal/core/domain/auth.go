package domain

// Role of an API caller
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// AuthContext contains the authenticated caller for request context
type AuthContext struct {
	Subject string `json:"subject"`
	Role    Role   `json:"role"`
}

// IsAdmin checks if the caller is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	Subject   string `json:"sub"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
