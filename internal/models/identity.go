package models

// Role is a capability tag attached to an authenticated identity.
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// Identity is the authenticated user record returned by the backend's
// login endpoint, including the bearer token used on every subsequent call.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
	Roles    []Role `json:"roles"`
}

// HasRole reports whether the identity carries any of the given roles.
func (id *Identity) HasRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsAdmin is a convenience shorthand for the admin-only views.
func (id *Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}

// LoginRequest is the body sent to POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
