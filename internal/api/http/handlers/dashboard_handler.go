package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/refresh"
	"github.com/spec-kit/rental-portal/internal/stats"
	"github.com/spec-kit/rental-portal/internal/upstream"
)

// DashboardHandler composes the admin dashboard payload.
type DashboardHandler struct {
	client    *upstream.Client
	synth     *stats.Synthesizer
	refresher *refresh.Refresher
	logger    *zap.Logger
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(client *upstream.Client, synth *stats.Synthesizer, refresher *refresh.Refresher, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{client: client, synth: synth, refresher: refresher, logger: logger}
}

// Stats handles GET /admin/dashboard. The two collection fetches run
// concurrently and fail independently; a failed side contributes an empty
// collection so the synthesizer's fallback branches render something. When
// both sides fail, the last cached snapshot is served instead.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	users, properties, userErr, propErr := refresh.Gather(c.UserContext(), h.client, accessToken(c))
	if userErr != nil {
		h.logger.Warn("dashboard user fetch failed", zap.Error(userErr))
	}
	if propErr != nil {
		h.logger.Warn("dashboard property fetch failed", zap.Error(propErr))
	}

	if userErr != nil && propErr != nil && h.refresher != nil {
		if cached, ok := h.refresher.Cached(c.UserContext()); ok {
			return c.JSON(fiber.Map{"data": cached, "stale": true})
		}
	}

	return c.JSON(fiber.Map{"data": h.synth.Dashboard(properties, users)})
}
