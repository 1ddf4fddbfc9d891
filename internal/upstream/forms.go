package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/rental-portal/internal/domain"
)

// CreateProperty submits a new listing for the authenticated owner.
func (c *Client) CreateProperty(ctx context.Context, token string, p domain.Property) (*domain.Property, error) {
	body, err := c.do(ctx, http.MethodPost, "/properties", token, p)
	if err != nil {
		return nil, err
	}
	return decodePropertyEnvelope(body)
}

// UpdateProperty edits an existing listing.
func (c *Client) UpdateProperty(ctx context.Context, token, id string, p domain.Property) (*domain.Property, error) {
	body, err := c.do(ctx, http.MethodPut, "/properties/"+id, token, p)
	if err != nil {
		return nil, err
	}
	return decodePropertyEnvelope(body)
}

// SubmitEnquiry posts a visit/booking enquiry.
func (c *Client) SubmitEnquiry(ctx context.Context, e domain.Enquiry) error {
	_, err := c.do(ctx, http.MethodPost, "/bookings/enquiries", "", e)
	return err
}

// SubmitContact posts a contact-us message.
func (c *Client) SubmitContact(ctx context.Context, ct domain.Contact) error {
	_, err := c.do(ctx, http.MethodPost, "/contact/details", "", ct)
	return err
}

func decodePropertyEnvelope(body []byte) (*domain.Property, error) {
	var envelope struct {
		Data struct {
			Property domain.Property `json:"property"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode property response: %w", err)
	}
	return &envelope.Data.Property, nil
}
