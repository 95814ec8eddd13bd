package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteColumns() []string {
	return []string{"id", "user_id", "title", "text", "completed", "ticket", "created_at", "updated_at"}
}

func noteRow(id, userID uuid.UUID, title string) *sqlmock.Rows {
	return sqlmock.NewRows(noteColumns()).
		AddRow(id.String(), userID.String(), title, "some text", false, 500, time.Now(), time.Now())
}

func TestNoteList_Empty(t *testing.T) {
	gdb, mock := newTestDB(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(noteColumns()))

	s := NewNoteService(gdb)
	_, err := s.List()
	assert.ErrorIs(t, err, ErrNoNotes)
}

func TestNoteList_PreloadsOwner(t *testing.T) {
	gdb, mock := newTestDB(t)
	noteID, userID := uuid.New(), uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(noteID, userID, "Fix the printer"))
	// Owner preload.
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(userID, "Alice", "hash", true))

	s := NewNoteService(gdb)
	notes, err := s.List()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Fix the printer", notes[0].Title)
	assert.Equal(t, "Alice", notes[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteCreate_FieldsRequired(t *testing.T) {
	gdb, _ := newTestDB(t)
	s := NewNoteService(gdb)

	tests := []struct {
		name string
		req  dto.CreateNoteRequest
	}{
		{"missing user", dto.CreateNoteRequest{Title: "T", Text: "x"}},
		{"missing title", dto.CreateNoteRequest{User: uuid.New().String(), Text: "x"}},
		{"missing text", dto.CreateNoteRequest{User: uuid.New().String(), Title: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := s.Create(&req)
			assert.ErrorIs(t, err, ErrFieldsRequired)
		})
	}
}

func TestNoteCreate_DuplicateTitle(t *testing.T) {
	gdb, mock := newTestDB(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(noteRow(uuid.New(), uuid.New(), "fix the printer"))

	s := NewNoteService(gdb)
	_, err := s.Create(&dto.CreateNoteRequest{
		User: uuid.New().String(), Title: "Fix The Printer", Text: "again",
	})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestNoteCreate_AssignsTicket(t *testing.T) {
	gdb, mock := newTestDB(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(noteColumns()))
	mock.ExpectQuery("INSERT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket"}).AddRow(uuid.New().String(), 501))

	s := NewNoteService(gdb)
	note, err := s.Create(&dto.CreateNoteRequest{
		User: uuid.New().String(), Title: "Fix the printer", Text: "toner again",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(501), note.Ticket)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteUpdate_DuplicateTitleOtherNote(t *testing.T) {
	gdb, mock := newTestDB(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(id, uuid.New(), "Old title"))
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(uuid.New(), uuid.New(), "New title"))

	s := NewNoteService(gdb)
	_, err := s.Update(&dto.UpdateNoteRequest{
		ID: id.String(), User: uuid.New().String(), Title: "New title", Text: "x", Completed: false,
	})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestNoteUpdate_NonBooleanCompleted(t *testing.T) {
	gdb, _ := newTestDB(t)

	s := NewNoteService(gdb)
	_, err := s.Update(&dto.UpdateNoteRequest{
		ID: uuid.New().String(), User: uuid.New().String(), Title: "T", Text: "x", Completed: "yes",
	})
	assert.ErrorIs(t, err, ErrFieldsRequired)
}

func TestNoteUpdate_Saves(t *testing.T) {
	gdb, mock := newTestDB(t)
	id, userID := uuid.New(), uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(id, userID, "Old title"))
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(id, userID, "New title"))
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewNoteService(gdb)
	note, err := s.Update(&dto.UpdateNoteRequest{
		ID: id.String(), User: userID.String(), Title: "New title", Text: "x", Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", note.Title)
	assert.True(t, note.Completed)
}

func TestNoteDelete_IDRequired(t *testing.T) {
	gdb, _ := newTestDB(t)
	s := NewNoteService(gdb)
	_, err := s.Delete(&dto.DeleteNoteRequest{})
	assert.ErrorIs(t, err, ErrNoteIDRequired)
}

func TestNoteDelete_RemovesRecord(t *testing.T) {
	gdb, mock := newTestDB(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(noteRow(id, uuid.New(), "Fix the printer"))
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewNoteService(gdb)
	note, err := s.Delete(&dto.DeleteNoteRequest{ID: id.String()})
	require.NoError(t, err)
	assert.Equal(t, "Fix the printer", note.Title)
}
