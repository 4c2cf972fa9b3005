// Package policy decides whether a navigation is allowed for the current
// identity. It is a pure function of its inputs and must be re-evaluated on
// every request: the identity can change between navigations via login and
// logout, so a cached decision would be wrong.
package policy

import "github.com/Pablo-Mora/gestion-activos/internal/models"

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated visitor to the login page.
	RedirectToLogin
	// RedirectToDefault sends an authenticated but unauthorized visitor to
	// the landing page.
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToDefault:
		return "redirect-to-default"
	}
	return "unknown"
}

// Authorize gates a route that requires any of the given roles. A nil
// identity always redirects to login, regardless of the requirement. An
// empty requirement admits any authenticated identity.
func Authorize(identity *models.Identity, required []models.Role) Decision {
	if identity == nil {
		return RedirectToLogin
	}
	if len(required) == 0 {
		return Allow
	}
	if identity.HasRole(required...) {
		return Allow
	}
	return RedirectToDefault
}
