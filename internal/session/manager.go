package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-portal/internal/config"
)

// Manager resolves sessions from request cookies and issues new ones.
type Manager struct {
	store      Store
	signer     *TokenSigner
	cookieName string
	ttl        time.Duration
}

// NewManager builds a manager around a store.
func NewManager(cfg config.SessionConfig, store Store) *Manager {
	return &Manager{
		store:      store,
		signer:     NewTokenSigner(cfg.Secret, cfg.TTL()),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL(),
	}
}

// Resolve loads the session referenced by the request cookie. A missing,
// invalid or expired cookie resolves to no session, never to an error; the
// caller treats that as an anonymous request.
func (m *Manager) Resolve(c *fiber.Ctx) (*Session, bool) {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return nil, false
	}
	id, err := m.signer.Parse(raw)
	if err != nil {
		return nil, false
	}
	s, err := m.store.Get(c.Context(), id)
	if err != nil {
		return nil, false
	}
	return s, true
}

// Issue creates a session holding the given values and sets its signed
// cookie on the response.
func (m *Manager) Issue(c *fiber.Ctx, values map[string]string) (*Session, error) {
	s, err := m.store.Create(c.Context())
	if err != nil {
		return nil, err
	}
	for k, v := range values {
		s.Set(k, v)
	}
	if err := m.store.Save(c.Context(), s); err != nil {
		return nil, err
	}

	signed, expiresAt, err := m.signer.Sign(s.ID)
	if err != nil {
		return nil, err
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return s, nil
}

// Update persists modified session values.
func (m *Manager) Update(c *fiber.Ctx, s *Session) error {
	return m.store.Save(c.Context(), s)
}

// Destroy clears the session and expires its cookie.
func (m *Manager) Destroy(c *fiber.Ctx, s *Session) error {
	if s != nil {
		s.Clear()
		if err := m.store.Delete(c.Context(), s.ID); err != nil {
			return err
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
