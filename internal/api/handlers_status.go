package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

// weekQuery lets callers inspect a past or future week; the current week is
// the default.
func (handler *Handler) weekQuery(c *fiber.Ctx) (string, bool) {
	weekID := strings.TrimSpace(c.Query("week"))
	if weekID == "" {
		return handler.currentWeekID(), true
	}
	if !services.IsValidWeekID(weekID) {
		return "", false
	}
	return weekID, true
}

func (handler *Handler) GetWeekStatus(c *fiber.Ctx) error {
	weekID, ok := handler.weekQuery(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "malformed week id")
	}

	statuses, err := handler.status.WeekStatusForAll(weekID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load week status")
	}

	pot, err := handler.status.PotTotal()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load week status")
	}

	return c.JSON(fiber.Map{
		"week_id": weekID,
		"users":   statuses,
		"pot":     pot,
	})
}

func (handler *Handler) GetUserWeekStatus(c *fiber.Ctx) error {
	weekID, ok := handler.weekQuery(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "malformed week id")
	}

	status, err := handler.status.WeekStatusForUser(c.Params("userId"), weekID)
	if err != nil {
		if errors.Is(err, services.ErrStatusLoadFailed) && strings.Contains(err.Error(), "unknown user") {
			return apiError(c, fiber.StatusNotFound, "unknown family member")
		}
		return apiError(c, fiber.StatusInternalServerError, "could not load week status")
	}
	return c.JSON(fiber.Map{"week_id": weekID, "status": status})
}
