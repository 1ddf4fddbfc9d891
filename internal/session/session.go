package session

// Keys stored in a session. These mirror the auth flags and profile display
// fields the upstream login response provides; all values are opaque strings.
const (
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserRole        = "userRole"
	KeyUserID          = "userId"
	KeyUserEmail       = "userEmail"
	KeyUserFirstName   = "userFirstName"
	KeyUserLastName    = "userLastName"
	KeyUserPhone       = "userPhone"
	KeyAccessToken     = "accessToken"
	KeyRefreshToken    = "refreshToken"
)

// Session is the server-held auth state for one logged-in browser.
type Session struct {
	ID     string
	Values map[string]string
}

// New returns an empty session with the given ID.
func New(id string) *Session {
	return &Session{ID: id, Values: make(map[string]string)}
}

// Get returns the stored value for key, or "" when absent.
func (s *Session) Get(key string) string {
	if s == nil {
		return ""
	}
	return s.Values[key]
}

// Set stores a value.
func (s *Session) Set(key, value string) {
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	s.Values[key] = value
}

// IsAuthenticated reports whether the session carries the literal
// authenticated flag. Flag presence is the entire client-side check; the
// upstream API re-authorizes every call with the access token.
func (s *Session) IsAuthenticated() bool {
	return s.Get(KeyIsAuthenticated) == "true"
}

// Role returns the stored role string.
func (s *Session) Role() string {
	return s.Get(KeyUserRole)
}

// Clear removes every stored value. Logout clears wholesale; there is no
// per-key retention.
func (s *Session) Clear() {
	s.Values = make(map[string]string)
}
