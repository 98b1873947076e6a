package types

// UserRole represents the different user roles in the system
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleDoctor  UserRole = "doctor"
	RolePatient UserRole = "patient"
)

// SystemUser represents an account that can sign in to the clinic system.
// PasswordHash is a bcrypt hash; the plaintext password is never stored.
// Email uniqueness is not enforced: lookups return the first match.
type SystemUser struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash"`
	Role         UserRole `json:"role"`
	Specialty    string   `json:"specialty,omitempty"`
	IsActive     bool     `json:"isActive"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// SystemUserUpdates represents a partial update to a system user
type SystemUserUpdates struct {
	Name         *string   `json:"name,omitempty"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash *string   `json:"-"`
	Role         *UserRole `json:"role,omitempty"`
	Specialty    *string   `json:"specialty,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
}

// Credentials represents user login credentials
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken represents an authentication token response
type AuthToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
