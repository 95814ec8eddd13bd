package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notedeck/notedeck/internal/dto"
	"github.com/notedeck/notedeck/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

// newUsersApp wires the users handler without auth middleware; the contract
// under test is the handler's, not the guards'.
func newUsersApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	gdb, mock := newTestDB(t)
	h := NewUsersHandler(services.NewUserService(gdb))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{Message: "Internal server error"})
		},
	})
	app.Get("/users", h.List)
	app.Post("/users", h.Create)
	app.Patch("/users", h.Update)
	app.Delete("/users", h.Delete)
	return app, mock
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()

	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(raw))
}

func messageOf(t *testing.T, body string) string {
	t.Helper()
	var out dto.MessageResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out.Message
}

func userColumns() []string {
	return []string{"id", "username", "password", "roles", "active", "created_at", "updated_at"}
}

func userRow(id uuid.UUID, username string) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns()).
		AddRow(id.String(), username, "hash", []byte(`["Employee"]`), true, time.Now(), time.Now())
}

func TestListUsers_EmptyIsBadRequest(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userColumns()))

	status, body := doJSON(t, app, "GET", "/users", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "No users found", messageOf(t, body))
}

func TestListUsers_NeverExposesPassword(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(uuid.New(), "Alice"))

	status, body := doJSON(t, app, "GET", "/users", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"username":"Alice"`)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "hash")
}

func TestCreateUser_MissingFields(t *testing.T) {
	app, _ := newUsersApp(t)

	bodies := []string{
		`{"password":"pw123","roles":["Employee"]}`,
		`{"username":"Alice","roles":["Employee"]}`,
		`{"username":"Alice","password":"pw123","roles":[]}`,
		`{"username":"Alice","password":"pw123"}`,
	}
	for _, b := range bodies {
		// Identical failed requests must fail identically.
		for i := 0; i < 2; i++ {
			status, body := doJSON(t, app, "POST", "/users", b)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "All fields are required", messageOf(t, body))
		}
	}
}

func TestCreateUser_CaseInsensitiveDuplicate(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(uuid.New(), "Alice"))

	status, body := doJSON(t, app, "POST", "/users",
		`{"username":"alice","password":"pw123","roles":["Employee"]}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Duplicate username", messageOf(t, body))
}

func TestCreateUser_Created(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectQuery("INSERT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	status, body := doJSON(t, app, "POST", "/users",
		`{"username":"Alice","password":"pw123","roles":["Employee"]}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "New user Alice created", messageOf(t, body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NonBooleanActive(t *testing.T) {
	app, _ := newUsersApp(t)

	// A string "true" is not a boolean; the reply is the field-validation
	// message, not a body-parse failure.
	status, body := doJSON(t, app, "PATCH", "/users",
		fmt.Sprintf(`{"id":%q,"username":"Alice","roles":["Employee"],"active":"true"}`, uuid.New()))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "All fields are required", messageOf(t, body))
}

func TestUpdateUser_MissingActive(t *testing.T) {
	app, _ := newUsersApp(t)

	status, body := doJSON(t, app, "PATCH", "/users",
		fmt.Sprintf(`{"id":%q,"username":"Alice","roles":["Employee"]}`, uuid.New()))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "All fields are required", messageOf(t, body))
}

func TestUpdateUser_NotFound(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userColumns()))

	status, body := doJSON(t, app, "PATCH", "/users",
		fmt.Sprintf(`{"id":%q,"username":"Alice","roles":["Employee"],"active":true}`, uuid.New()))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User not found", messageOf(t, body))
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	app, mock := newUsersApp(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(id, "Alice"))
	// A different user already holds the requested name.
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(uuid.New(), "Bob"))

	status, body := doJSON(t, app, "PATCH", "/users",
		fmt.Sprintf(`{"id":%q,"username":"BOB","roles":["Employee"],"active":true}`, id))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Duplicate username", messageOf(t, body))
}

func TestUpdateUser_ReportsUpdatedUsername(t *testing.T) {
	app, mock := newUsersApp(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(id, "Alice"))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))

	status, body := doJSON(t, app, "PATCH", "/users",
		fmt.Sprintf(`{"id":%q,"username":"Alicia","roles":["Employee"],"active":true}`, id))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Alicia updated", messageOf(t, body))
}

func TestDeleteUser_IDRequired(t *testing.T) {
	app, _ := newUsersApp(t)

	status, body := doJSON(t, app, "DELETE", "/users", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User ID Required", messageOf(t, body))
}

func TestDeleteUser_BlockedByNotes(t *testing.T) {
	app, mock := newUsersApp(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status, body := doJSON(t, app, "DELETE", "/users",
		fmt.Sprintf(`{"id":%q}`, uuid.New()))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User has assigned notes", messageOf(t, body))
}

func TestDeleteUser_BareStringReply(t *testing.T) {
	app, mock := newUsersApp(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT").WillReturnRows(userRow(id, "Alice"))
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))

	status, body := doJSON(t, app, "DELETE", "/users",
		fmt.Sprintf(`{"id":%q}`, id))
	assert.Equal(t, fiber.StatusOK, status)
	// The delete confirmation is a bare JSON string, not a message object.
	assert.Equal(t, fmt.Sprintf("%q", fmt.Sprintf("Username Alice with ID %s deleted", id)), body)
}
