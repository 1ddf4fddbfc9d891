package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn     EventType = "user_logged_in"
	EventUserLoggedOut    EventType = "user_logged_out"
	EventUserDeleted      EventType = "user_deleted"
	EventPropertyCreated  EventType = "property_created"
	EventPropertyUpdated  EventType = "property_updated"
	EventPropertyDeleted  EventType = "property_deleted"
	EventEnquiryDeleted   EventType = "enquiry_deleted"
	EventEnquirySubmitted EventType = "enquiry_submitted"
	EventContactSubmitted EventType = "contact_submitted"
	EventContactDeleted   EventType = "contact_deleted"
)

// Actor identifies who triggered an event. Anonymous form submissions carry
// an empty UserID.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Event represents an action published by handlers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}
