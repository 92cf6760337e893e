package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

func (handler *Handler) PlanAbsence(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	input := absenceInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed absence payload")
	}

	absence, err := handler.absences.PlanAbsence(user.ID, input.FrozenWeekID, input.RecoveryWeeks)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAbsenceInvalid), errors.Is(err, services.ErrRecoveryNotAdjacent):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAbsenceAlreadySet):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "could not save the absence, try again")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"absence": absence})
}

func (handler *Handler) GetUserAbsences(c *fiber.Ctx) error {
	absences, err := handler.absences.ListForUser(c.Params("userId"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load absences")
	}
	return c.JSON(fiber.Map{"absences": absences})
}
