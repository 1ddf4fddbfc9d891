package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-portal/internal/api/dto"
	"github.com/spec-kit/rental-portal/internal/domain"
	"github.com/spec-kit/rental-portal/internal/events"
	"github.com/spec-kit/rental-portal/internal/listview"
	"github.com/spec-kit/rental-portal/internal/upstream"
	apperrors "github.com/spec-kit/rental-portal/pkg/util/errorutil"
)

// UsersHandler serves the admin user list.
type UsersHandler struct {
	client     *upstream.Client
	dispatcher events.Dispatcher
}

// NewUsersHandler constructs handler.
func NewUsersHandler(client *upstream.Client, dispatcher events.Dispatcher) *UsersHandler {
	return &UsersHandler{client: client, dispatcher: dispatcher}
}

func userSearchFields(u domain.User) []string {
	return []string{u.Firstname, u.Lastname, u.Email, u.Phone}
}

// List handles GET /admin/users. One upstream page is fetched; the search
// term filters within that page only.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	page, err := h.client.ListUsers(c.UserContext(), accessToken(c), upstream.ListOptions{
		Role:  q.Role,
		Page:  q.Page,
		Limit: listview.PageSize,
	})
	if err != nil {
		return err
	}

	matched := listview.Filter(page.Items, q.Search, userSearchFields)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"users": matched,
			"meta": dto.ListMeta{
				Page:       q.Page,
				TotalPages: page.TotalPages,
				Total:      page.Total,
				Matched:    len(matched),
			},
		},
	})
}

// Delete handles DELETE /admin/users/:id. After the upstream delete, the
// current page is refetched; an emptied last page steps the view back one.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("user id required", nil)
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	q.Normalize()

	token := accessToken(c)
	if err := h.client.DeleteUser(c.UserContext(), token, id); err != nil {
		return err
	}
	_ = h.dispatcher.Publish(c.Context(), newEvent(c, events.EventUserDeleted, id))

	remaining := 0
	if page, err := h.client.ListUsers(c.UserContext(), token, upstream.ListOptions{
		Role:  q.Role,
		Page:  q.Page,
		Limit: listview.PageSize,
	}); err == nil {
		remaining = len(page.Items)
	}

	return c.JSON(fiber.Map{
		"message": "user deleted",
		"page":    listview.PageAfterDelete(q.Page, remaining),
	})
}
