package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-portal/internal/api/dto"
	"github.com/spec-kit/rental-portal/internal/domain"
	"github.com/spec-kit/rental-portal/internal/events"
	"github.com/spec-kit/rental-portal/internal/listview"
	"github.com/spec-kit/rental-portal/internal/upstream"
	apperrors "github.com/spec-kit/rental-portal/pkg/util/errorutil"
)

// EnquiriesHandler serves the public enquiry/contact forms and the admin
// moderation tables for both.
type EnquiriesHandler struct {
	client     *upstream.Client
	dispatcher events.Dispatcher
}

// NewEnquiriesHandler constructs handler.
func NewEnquiriesHandler(client *upstream.Client, dispatcher events.Dispatcher) *EnquiriesHandler {
	return &EnquiriesHandler{client: client, dispatcher: dispatcher}
}

func enquirySearchFields(e domain.Enquiry) []string {
	return []string{e.Name, e.Email, e.Number, e.City, e.Message}
}

func contactSearchFields(ct domain.Contact) []string {
	return []string{ct.Name, ct.Email, ct.Phone, ct.City, ct.Message}
}

// Submit handles POST /enquiries, a visit/booking enquiry.
func (h *EnquiriesHandler) Submit(c *fiber.Ctx) error {
	var req dto.EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" {
		return apperrors.NewValidationError("name and email required", nil)
	}
	if !isTenDigitPhone(req.Number) {
		return apperrors.NewValidationError("number must be exactly 10 digits", nil)
	}

	err := h.client.SubmitEnquiry(c.Context(), domain.Enquiry{
		Name:       req.Name,
		Email:      req.Email,
		Number:     req.Number,
		City:       req.City,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		Status:     domain.EnquiryStatusPending,
	})
	if err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventEnquirySubmitted, req.PropertyID))

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "enquiry submitted"})
}

// SubmitContact handles POST /contact.
func (h *EnquiriesHandler) SubmitContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("name, email, message required", nil)
	}
	if !isTenDigitPhone(req.Phone) {
		return apperrors.NewValidationError("phone must be exactly 10 digits", nil)
	}

	err := h.client.SubmitContact(c.Context(), domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		City:    req.City,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventContactSubmitted, req.Email))

	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "message sent"})
}

// List handles GET /admin/enquiries.
func (h *EnquiriesHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListEnquiries(c.UserContext(), accessToken(c), upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, enquirySearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"enquiries": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}

// Delete handles DELETE /admin/enquiries/:id.
func (h *EnquiriesHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("enquiry id required", nil)
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	token := accessToken(c)
	if err := h.client.DeleteEnquiry(c.UserContext(), token, id); err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventEnquiryDeleted, id))

	remaining := 0
	if page, err := h.client.ListEnquiries(c.UserContext(), token, upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	}); err == nil {
		remaining = len(page.Items)
	}

	return c.JSON(fiber.Map{
		"message": "enquiry deleted",
		"page":    listview.PageAfterDelete(q.Page, remaining),
	})
}

// ListContacts handles GET /admin/contacts.
func (h *EnquiriesHandler) ListContacts(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListContacts(c.UserContext(), accessToken(c), upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, contactSearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"contacts": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}

// DeleteContact handles DELETE /admin/contacts/:id.
func (h *EnquiriesHandler) DeleteContact(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("contact id required", nil)
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	token := accessToken(c)
	if err := h.client.DeleteContact(c.UserContext(), token, id); err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventContactDeleted, id))

	remaining := 0
	if page, err := h.client.ListContacts(c.UserContext(), token, upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	}); err == nil {
		remaining = len(page.Items)
	}

	return c.JSON(fiber.Map{
		"message": "contact deleted",
		"page":    listview.PageAfterDelete(q.Page, remaining),
	})
}
