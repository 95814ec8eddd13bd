package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/services"
)

// NotesHandler mirrors the users contract for notes: 400 for not-found, 409
// for collated title conflicts, bare-string delete confirmations.
type NotesHandler struct {
	notes *services.NoteService
}

func NewNotesHandler(notes *services.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// List handles GET /notes. Each entry carries its owner's username.
func (h *NotesHandler) List(c *fiber.Ctx) error {
	notes, err := h.notes.List()
	if err != nil {
		if errors.Is(err, services.ErrNoNotes) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "No notes found"})
		}
		return err
	}

	resp := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, dto.NoteResponse{
			ID:        n.ID,
			User:      n.UserID,
			Username:  n.User.Username,
			Title:     n.Title,
			Text:      n.Text,
			Completed: n.Completed,
			Ticket:    n.Ticket,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}
	return c.JSON(resp)
}

// Create handles POST /notes.
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	_, err := h.notes.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "All fields are required"})
		case errors.Is(err, services.ErrDuplicateTitle):
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Duplicate note title"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User not found"})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "New note created"})
}

// Update handles PATCH /notes.
func (h *NotesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	note, err := h.notes.Update(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "All fields are required"})
		case errors.Is(err, services.ErrNoteNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Note not found"})
		case errors.Is(err, services.ErrDuplicateTitle):
			return c.Status(fiber.StatusConflict).JSON(dto.MessageResponse{Message: "Duplicate note title"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "User not found"})
		}
		return err
	}

	return c.JSON(dto.MessageResponse{
		Message: fmt.Sprintf("'%s' updated", note.Title),
	})
}

// Delete handles DELETE /notes. The confirmation body is a bare JSON string.
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Invalid request body"})
	}

	note, err := h.notes.Delete(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteIDRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Note ID required"})
		case errors.Is(err, services.ErrNoteNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: "Note not found"})
		}
		return err
	}

	return c.JSON(fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID))
}
