// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"strings"

	"rolodex/internal/models"
	"rolodex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Description Replace the profile with a multipart form submission; a new image replaces the stored one
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	image, filename, err := s.readImageUpload(c, "image")
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	in := service.ProfileUpdateInput{
		Username:      strings.TrimSpace(c.FormValue("username")),
		Email:         strings.TrimSpace(c.FormValue("email")),
		FirstName:     strings.TrimSpace(c.FormValue("first_name")),
		LastName:      strings.TrimSpace(c.FormValue("last_name")),
		Contact:       strings.TrimSpace(c.FormValue("contact")),
		Bio:           c.FormValue("bio"),
		Image:         image,
		ImageFilename: filename,
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me
// @Summary Delete own account
// @Description Remove the account and every contact it owns after confirming the password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.DeleteAccount(c.Context(), userID, req.Password); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}
