package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/events"
)

// AuditService logs a structured trail of portal actions: logins, deletes
// and form submissions. It replaces the per-action console logging the
// views used to do.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to every audited event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserLoggedIn,
		events.EventUserLoggedOut,
		events.EventUserDeleted,
		events.EventPropertyCreated,
		events.EventPropertyUpdated,
		events.EventPropertyDeleted,
		events.EventEnquirySubmitted,
		events.EventEnquiryDeleted,
		events.EventContactSubmitted,
		events.EventContactDeleted,
	} {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.String("actor_role", event.Actor.Role),
		zap.Time("at", event.Timestamp),
	)
	return nil
}
