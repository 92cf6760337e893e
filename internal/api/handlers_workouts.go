package api

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

func (handler *Handler) LogWorkout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(c.FormValue("date")), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	duration, err := strconv.Atoi(strings.TrimSpace(c.FormValue("duration_min")))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "duration_min must be a number")
	}

	input := services.WorkoutInput{
		UserID:      user.ID,
		Date:        date,
		Exercise:    strings.TrimSpace(c.FormValue("exercise")),
		DurationMin: duration,
		Description: strings.TrimSpace(c.FormValue("description")),
	}

	if photoHeader, err := c.FormFile("photo"); err == nil && photoHeader != nil {
		if photoHeader.Size > maxPhotoBytes {
			return apiError(c, fiber.StatusBadRequest, "photo too large")
		}
		file, err := photoHeader.Open()
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "could not read photo")
		}
		photo, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "could not read photo")
		}
		input.Photo = photo
		input.PhotoExt = strings.ToLower(filepath.Ext(photoHeader.Filename))
		if modTime := strings.TrimSpace(c.FormValue("photo_mod_time")); modTime != "" {
			if parsed, err := time.Parse(time.RFC3339, modTime); err == nil {
				input.PhotoModTime = parsed
			}
		}
	}

	workout, photoCheck, err := handler.workouts.LogWorkout(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkoutInvalid),
			errors.Is(err, services.ErrUnknownExerciseType),
			errors.Is(err, services.ErrWorkoutDurationOdd):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrWorkoutPhotoTooOld):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":       err.Error(),
				"photo_check": photoCheck,
			})
		default:
			return apiError(c, fiber.StatusInternalServerError, "could not save the workout, try again")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"workout":     workout,
		"photo_check": photoCheck,
	})
}

func (handler *Handler) GetWorkoutFeed(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	workouts, err := handler.workouts.Feed(limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load the feed")
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}

func (handler *Handler) GetUserWorkouts(c *fiber.Ctx) error {
	workouts, err := handler.workouts.HistoryForUser(c.Params("userId"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load workouts")
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}
