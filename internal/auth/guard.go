package auth

import (
	"github.com/spec-kit/rental-portal/internal/domain"
	"github.com/spec-kit/rental-portal/internal/session"
)

// Requirement names what a guarded route demands of the caller.
type Requirement int

const (
	// RequireAuthenticated admits any logged-in session regardless of role.
	RequireAuthenticated Requirement = iota
	// RequireOwner admits PG owners only.
	RequireOwner
	// RequireAdmin admits admins only.
	RequireAdmin
)

// Decision is the guard outcome: allow, or redirect elsewhere.
type Decision struct {
	Allow      bool
	RedirectTo string
}

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decide evaluates a session against a requirement. Unauthenticated callers
// are sent to login; authenticated callers of the wrong role are sent home.
// The check is the stored flag string and role only; token validity is the
// upstream API's concern.
func Decide(s *session.Session, req Requirement) Decision {
	if s == nil || !s.IsAuthenticated() {
		return Decision{RedirectTo: loginPath}
	}

	switch req {
	case RequireOwner:
		if s.Role() != string(domain.RoleOwner) {
			return Decision{RedirectTo: homePath}
		}
	case RequireAdmin:
		if s.Role() != string(domain.RoleAdmin) {
			return Decision{RedirectTo: homePath}
		}
	}
	return Decision{Allow: true}
}
