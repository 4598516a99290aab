package auth

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// User is the authenticated caller resolved from a token
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Dashboard roles allowed past the middleware.
const (
	RoleAdmin     = "admin"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)
