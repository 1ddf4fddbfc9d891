package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/rental-portal/internal/domain"
)

// fullCollectionLimit is the page size used when a view needs the whole
// collection in one fetch, such as the dashboard aggregates.
const fullCollectionLimit = 1000

// ListUsers fetches one page of users.
func (c *Client) ListUsers(ctx context.Context, token string, opts ListOptions) (Page[domain.User], error) {
	body, err := c.get(ctx, "/users", token, &opts)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return decodePage[domain.User](body, "users")
}

// AllUsers fetches the full user collection.
func (c *Client) AllUsers(ctx context.Context, token string) ([]domain.User, error) {
	page, err := c.ListUsers(ctx, token, ListOptions{Limit: fullCollectionLimit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListProperties fetches one page of listings.
func (c *Client) ListProperties(ctx context.Context, token string, opts ListOptions) (Page[domain.Property], error) {
	body, err := c.get(ctx, "/properties", token, &opts)
	if err != nil {
		return Page[domain.Property]{}, err
	}
	return decodePage[domain.Property](body, "properties")
}

// AllProperties fetches the full listing collection.
func (c *Client) AllProperties(ctx context.Context, token string) ([]domain.Property, error) {
	page, err := c.ListProperties(ctx, token, ListOptions{Limit: fullCollectionLimit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetProperty fetches a single listing. The upstream answers either with a
// {data:{property:...}} envelope or the listing directly under data.
func (c *Client) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	body, err := c.do(ctx, http.MethodGet, "/properties/"+id, "", nil)
	if err != nil {
		return nil, err
	}

	var keyed struct {
		Data struct {
			Property *domain.Property `json:"property"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &keyed); err == nil && keyed.Data.Property != nil {
		return keyed.Data.Property, nil
	}

	var bare struct {
		Data domain.Property `json:"data"`
	}
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("decode property response: %w", err)
	}
	return &bare.Data, nil
}

// ListEnquiries fetches one page of booking enquiries.
func (c *Client) ListEnquiries(ctx context.Context, token string, opts ListOptions) (Page[domain.Enquiry], error) {
	body, err := c.get(ctx, "/bookings/enquiries", token, &opts)
	if err != nil {
		return Page[domain.Enquiry]{}, err
	}
	return decodePage[domain.Enquiry](body, "enquiries")
}

// ListContacts fetches one page of contact submissions.
func (c *Client) ListContacts(ctx context.Context, token string, opts ListOptions) (Page[domain.Contact], error) {
	body, err := c.get(ctx, "/contact/details", token, &opts)
	if err != nil {
		return Page[domain.Contact]{}, err
	}
	return decodePage[domain.Contact](body, "contacts")
}

// DeleteUser removes a user upstream.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+id, token, nil)
	return err
}

// DeleteProperty removes a listing upstream.
func (c *Client) DeleteProperty(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/properties/"+id, token, nil)
	return err
}

// DeleteEnquiry removes a booking enquiry upstream.
func (c *Client) DeleteEnquiry(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/bookings/enquiries/"+id, token, nil)
	return err
}

// DeleteContact removes a contact submission upstream.
func (c *Client) DeleteContact(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contact/details/"+id, token, nil)
	return err
}
