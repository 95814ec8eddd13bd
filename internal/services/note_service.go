package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/notedeck/notedeck/internal/database"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoNotes        = errors.New("no notes found")
	ErrDuplicateTitle = errors.New("duplicate note title")
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoteIDRequired = errors.New("note id required")
)

type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns every note with its owner preloaded, so handlers can attach
// the username to each entry. Mirrors the user list contract: empty is an
// error, not an empty collection.
func (s *NoteService) List() ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Preload("User").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}
	return notes, nil
}

func (s *NoteService) Create(req *dto.CreateNoteRequest) (*models.Note, error) {
	if req.User == "" || req.Title == "" || req.Text == "" {
		return nil, ErrFieldsRequired
	}

	userID, err := uuid.Parse(req.User)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var existing models.Note
	err = s.db.Scopes(database.Collated("title", req.Title)).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateTitle
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check duplicate title: %w", err)
	}

	note := models.Note{
		ID:     uuid.New(),
		UserID: userID,
		Title:  req.Title,
		Text:   req.Text,
	}

	if err := s.db.Omit("User").Create(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

func (s *NoteService) Update(req *dto.UpdateNoteRequest) (*models.Note, error) {
	completed, ok := req.Completed.(bool)
	if req.ID == "" || req.User == "" || req.Title == "" || req.Text == "" || !ok {
		return nil, ErrFieldsRequired
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrNoteNotFound
	}
	userID, err := uuid.Parse(req.User)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var note models.Note
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	var existing models.Note
	err = s.db.Scopes(database.Collated("title", req.Title)).First(&existing).Error
	if err == nil && existing.ID != note.ID {
		return nil, ErrDuplicateTitle
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check duplicate title: %w", err)
	}

	note.UserID = userID
	note.Title = req.Title
	note.Text = req.Text
	note.Completed = completed

	if err := s.db.Omit("User").Save(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

func (s *NoteService) Delete(req *dto.DeleteNoteRequest) (*models.Note, error) {
	if req.ID == "" {
		return nil, ErrNoteIDRequired
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrNoteNotFound
	}

	var note models.Note
	if err := s.db.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if err := s.db.Delete(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return &note, nil
}
