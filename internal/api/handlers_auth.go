package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vergaracl/fitfam/internal/services"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "malformed login payload")
	}

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return apiError(c, fiber.StatusBadRequest, "user_id required")
	}

	user, err := handler.auth.Login(input.UserID, strings.TrimSpace(input.PIN))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPIN):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrWrongPIN), errors.Is(err, services.ErrUnknownMember):
			return apiError(c, fiber.StatusUnauthorized, "wrong member or PIN")
		default:
			return apiError(c, fiber.StatusInternalServerError, "login failed, try again")
		}
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed, try again")
	}

	return c.JSON(fiber.Map{
		"user_id": user.ID,
		"name":    user.Name,
		"avatar":  user.Avatar,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}
	return c.JSON(fiber.Map{
		"user_id":        user.ID,
		"name":           user.Name,
		"avatar":         user.Avatar,
		"wallet_balance": user.WalletBalance,
		"extra_lives":    user.ExtraLives,
		"has_shield":     user.HasShield,
	})
}
