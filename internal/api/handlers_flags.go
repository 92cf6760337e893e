package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

func (handler *Handler) FlagWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	workoutID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed workout id")
	}

	flag, err := handler.flags.FlagWorkout(uint(workoutID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkoutNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrFlagOwnWorkout):
			return apiError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrFlagAlreadyExists):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "could not flag the workout, try again")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"flag": flag})
}

func (handler *Handler) VoteOnWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	workoutID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed workout id")
	}

	input := voteInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed vote payload")
	}

	flag, err := handler.flags.Vote(uint(workoutID), user.ID, input.Choice)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVote):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrFlagNotFound):
			return apiError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrVoteOwnWorkout):
			return apiError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrFlagResolved):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "could not record the vote, try again")
		}
	}

	return c.JSON(fiber.Map{"flag": flag})
}

func (handler *Handler) GetOpenFlags(c *fiber.Ctx) error {
	flags, err := handler.flags.OpenFlags()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load flags")
	}
	return c.JSON(fiber.Map{"flags": flags})
}
