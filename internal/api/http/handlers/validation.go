package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/rental-portal/internal/auth"
	"github.com/spec-kit/rental-portal/internal/events"
	"github.com/spec-kit/rental-portal/internal/session"
)

// isTenDigitPhone reports whether s is exactly ten ASCII digits, the only
// phone format the forms accept.
func isTenDigitPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// accessToken pulls the upstream bearer token out of the request session.
func accessToken(c *fiber.Ctx) string {
	s, _ := auth.SessionFromContext(c)
	return s.Get(session.KeyAccessToken)
}

// actorFromContext builds the audit actor for the current caller.
func actorFromContext(c *fiber.Ctx) events.Actor {
	s, _ := auth.SessionFromContext(c)
	if s == nil {
		return events.Actor{}
	}
	return events.Actor{
		UserID: s.Get(session.KeyUserID),
		Role:   s.Role(),
	}
}

// newEvent assembles an audit event for publication.
func newEvent(c *fiber.Ctx, eventType events.EventType, subjectID string) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actorFromContext(c),
		Timestamp: time.Now(),
	}
}
