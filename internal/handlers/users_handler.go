package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/services"
)

// UsersHandler exposes user management. Error messages and status codes are
// wire contract: not-found conditions reply 400, never 404, and the delete
// confirmation is a bare JSON string rather than a message object.
type UsersHandler struct {
	users *services.UserService
}

func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users. Passwords are never serialized.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		if errors.Is(err, services.ErrNoUsers) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "No users found"})
		}
		return err
	}
	return c.JSON(users)
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	user, err := h.users.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "All fields are required"})
		case errors.Is(err, services.ErrDuplicateUsername):
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Duplicate username"})
		}
		return err
	}
	if user == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid user credentials"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: fmt.Sprintf("New user %s created", user.Username),
	})
}

// Update handles PATCH /users.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	user, err := h.users.Update(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "All fields are required"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User not found"})
		case errors.Is(err, services.ErrDuplicateUsername):
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Duplicate username"})
		}
		return err
	}

	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("%s updated", user.Username),
	})
}

// Delete handles DELETE /users. The confirmation body is a bare JSON string.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	user, err := h.users.Delete(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserIDRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User ID Required"})
		case errors.Is(err, services.ErrUserHasNotes):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User has assigned notes"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User not found"})
		}
		return err
	}

	return c.JSON(fmt.Sprintf("Username %s with ID %s deleted", user.Username, user.ID))
}
