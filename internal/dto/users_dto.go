package dto

type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest carries a full replacement of the mutable user fields.
// Active decodes loosely so a missing or non-boolean value is rejected by
// field validation rather than failing the body parse. Password is optional
// and only re-hashed when non-empty.
type UpdateUserRequest struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Roles    []string    `json:"roles"`
	Active   interface{} `json:"active"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}
