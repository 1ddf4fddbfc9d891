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

// browsePageSize is the public listing grid size; admin tables stay at the
// fixed listview page size.
const browsePageSize = 12

// PropertiesHandler serves listing browsing, the owner catalog and the
// admin property table.
type PropertiesHandler struct {
	client     *upstream.Client
	dispatcher events.Dispatcher
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(client *upstream.Client, dispatcher events.Dispatcher) *PropertiesHandler {
	return &PropertiesHandler{client: client, dispatcher: dispatcher}
}

func propertySearchFields(p domain.Property) []string {
	return []string{p.Title, p.PropertyType, p.Address.City, p.Status}
}

// Browse handles GET /properties, the public listing grid.
func (h *PropertiesHandler) Browse(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListProperties(c.UserContext(), "", upstream.ListOptions{
		Page:  q.Page,
		Limit: browsePageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, propertySearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"properties": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}

// Detail handles GET /properties/:id.
func (h *PropertiesHandler) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("property id required", nil)
	}
	property, err := h.client.GetProperty(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"property": property}})
}

// OwnerList handles GET /owner/properties, the owner's own catalog.
func (h *PropertiesHandler) OwnerList(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListProperties(c.UserContext(), accessToken(c), upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, propertySearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"properties": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}

// Create handles POST /owner/properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	var form dto.PropertyForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if form.Title == "" || form.PropertyType == "" {
		return apperrors.NewValidationError("title and propertyType required", nil)
	}
	if form.PriceAmount <= 0 {
		return apperrors.NewValidationError("price must be positive", nil)
	}

	created, err := h.client.CreateProperty(c.UserContext(), accessToken(c), form.ToDomain())
	if err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventPropertyCreated, created.ID))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    fiber.Map{"property": created},
		"message": "property created",
	})
}

// Update handles PUT /owner/properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	var form dto.PropertyForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if form.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	updated, err := h.client.UpdateProperty(c.UserContext(), accessToken(c), id, form.ToDomain())
	if err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventPropertyUpdated, id))

	return c.JSON(fiber.Map{
		"data":    fiber.Map{"property": updated},
		"message": "property updated",
	})
}

// Delete handles DELETE /owner/properties/:id and
// DELETE /admin/properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	token := accessToken(c)
	if err := h.client.DeleteProperty(c.UserContext(), token, id); err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventPropertyDeleted, id))

	remaining := 0
	if page, err := h.client.ListProperties(c.UserContext(), token, upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	}); err == nil {
		remaining = len(page.Items)
	}

	return c.JSON(fiber.Map{
		"message": "property deleted",
		"page":    listview.PageAfterDelete(q.Page, remaining),
	})
}

// AdminList handles GET /admin/properties.
func (h *PropertiesHandler) AdminList(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListProperties(c.UserContext(), accessToken(c), upstream.ListOptions{
		Page:  q.Page,
		Limit: listview.PageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, propertySearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"properties": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}
