package client

import "github.com/google/uuid"

// ViewState is the three-way branch every cache consumer renders:
// Loading until the query resolves, Empty when the projected value is
// missing, Ready otherwise.
type ViewState int

const (
	Loading ViewState = iota
	Empty
	Ready
)

func (s ViewState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// UserPickerView backs a new-note form: it needs the full ordered user list
// to populate the assignee selector. Data is nil unless the state is Ready.
func UserPickerView(q *UsersQuery) (ViewState, []User) {
	value, ok := q.Select(OrderedUsers)
	if !ok {
		return Loading, nil
	}
	users := value.([]User)
	if len(users) == 0 {
		return Empty, nil
	}
	return Ready, users
}

// UserEditorView backs an edit form: it projects one user by id to
// pre-populate the fields. Data is nil unless the state is Ready.
func UserEditorView(q *UsersQuery, id uuid.UUID) (ViewState, *User) {
	value, ok := q.Select(UserByID(id))
	if !ok {
		return Loading, nil
	}
	user := value.(*User)
	if user == nil {
		return Empty, nil
	}
	return Ready, user
}
