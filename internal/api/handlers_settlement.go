package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

// CloseWeek runs settlement. Defaults to the current week; the button in
// the client passes it explicitly, a bare call settles the week in progress.
func (handler *Handler) CloseWeek(c *fiber.Ctx) error {
	input := closeWeekInput{}
	if err := c.BodyParser(&input); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return apiError(c, fiber.StatusBadRequest, "malformed payload")
	}

	weekID := strings.TrimSpace(input.WeekID)
	if weekID == "" {
		weekID = handler.currentWeekID()
	}

	results, err := handler.settlement.CloseWeek(weekID)
	if err != nil {
		if strings.Contains(err.Error(), "invalid week id") {
			return apiError(c, fiber.StatusBadRequest, "malformed week id")
		}
		return apiError(c, fiber.StatusInternalServerError, "settlement failed, try again")
	}

	return c.JSON(fiber.Map{"week_id": weekID, "results": results})
}

func (handler *Handler) GetWeekSummaries(c *fiber.Ctx) error {
	weekID := c.Params("weekId")
	if !services.IsValidWeekID(weekID) {
		return apiError(c, fiber.StatusBadRequest, "malformed week id")
	}

	summaries, err := handler.repos.Summaries.ListByWeek(weekID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load summaries")
	}
	return c.JSON(fiber.Map{"week_id": weekID, "summaries": summaries})
}

func (handler *Handler) GetUserSummaries(c *fiber.Ctx) error {
	summaries, err := handler.repos.Summaries.ListByUser(c.Params("userId"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load summaries")
	}
	return c.JSON(fiber.Map{"summaries": summaries})
}
