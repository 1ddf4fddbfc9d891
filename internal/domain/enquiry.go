package domain

import "time"

// EnquiryStatus enumerates the upstream lifecycle of an enquiry.
type EnquiryStatus string

const (
	EnquiryStatusPending   EnquiryStatus = "pending"
	EnquiryStatusResponded EnquiryStatus = "responded"
	EnquiryStatusResolved  EnquiryStatus = "resolved"
)

// Enquiry is a visit/booking enquiry raised against a listing. Write-only
// from this layer except for admin listing and delete.
type Enquiry struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Number     string        `json:"number"`
	City       string        `json:"city"`
	Message    string        `json:"message"`
	PropertyID string        `json:"propertyId,omitempty"`
	Status     EnquiryStatus `json:"status"`
	CreatedAt  *time.Time    `json:"createdAt,omitempty"`
}

// Contact is a general contact-us submission, not tied to a listing.
type Contact struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	City      string     `json:"city"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
