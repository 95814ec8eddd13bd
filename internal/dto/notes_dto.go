package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	User  string `json:"user"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdateNoteRequest decodes completed loosely, same as
// UpdateUserRequest.Active.
type UpdateNoteRequest struct {
	ID        string      `json:"id"`
	User      string      `json:"user"`
	Title     string      `json:"title"`
	Text      string      `json:"text"`
	Completed interface{} `json:"completed"`
}

type DeleteNoteRequest struct {
	ID string `json:"id"`
}

// NoteResponse is a note joined with its owner's username, which the list
// endpoint returns so clients need no second lookup.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int64     `json:"ticket"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
