package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vergaracl/fitfam/internal/services"
)

func (handler *Handler) SubmitJustification(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	weekID := strings.TrimSpace(c.FormValue("week_id"))
	if weekID == "" {
		weekID = handler.currentWeekID()
	}
	if !services.IsValidWeekID(weekID) {
		return apiError(c, fiber.StatusBadRequest, "malformed week id")
	}

	submission := services.ExcuseSubmission{
		UserID:     user.ID,
		WeekID:     weekID,
		ExcuseText: strings.TrimSpace(c.FormValue("excuse")),
	}
	if err := services.CheckExcuseText(submission.ExcuseText); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
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

		ext := strings.ToLower(filepath.Ext(photoHeader.Filename))
		objectPath := path.Join("justifications", user.ID, fmt.Sprintf("%s_%s%s", weekID, uuid.NewString(), ext))
		photoURL, err := handler.objects.Upload(objectPath, photo)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not upload evidence, try again")
		}

		submission.PhotoURL = photoURL
		submission.Evidence = photo
		submission.EvidenceMIME = mime.TypeByExtension(ext)
	}

	justification, err := handler.justifications.Submit(c.UserContext(), submission)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExcuseTooShort):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAppealNotAllowed):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "could not save the justification, try again")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"justification": justification})
}

func (handler *Handler) GetWeekJustifications(c *fiber.Ctx) error {
	weekID := c.Params("weekId")
	if !services.IsValidWeekID(weekID) {
		return apiError(c, fiber.StatusBadRequest, "malformed week id")
	}

	justifications, err := handler.justifications.ListForWeek(weekID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load justifications")
	}
	return c.JSON(fiber.Map{"week_id": weekID, "justifications": justifications})
}
