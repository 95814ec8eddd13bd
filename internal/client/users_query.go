package client

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// NormalizedUsers is the cached representation of the user list: an ordered
// id sequence plus an id-to-entity mapping, so consumers can project either a
// single record or the whole collection cheaply.
type NormalizedUsers struct {
	IDs      []uuid.UUID
	Entities map[uuid.UUID]User
}

// Projection derives a consumer-specific slice of the normalized cache.
// Projections must not mutate their input.
type Projection func(NormalizedUsers) interface{}

type subscriber struct {
	project Projection
	last    interface{}
	notify  func(interface{})
}

// UsersQuery is a read-through cache over the list-users endpoint. A fetch
// failure (including the API's "no users found" reply) still resolves the
// query, with an empty normalized result; consumers see the empty branch
// rather than staying on the loading branch forever.
//
// Subscribers register a projection and are notified only when the projected
// value changes between refreshes, not on every unrelated cache update.
type UsersQuery struct {
	client *Client

	mu       sync.RWMutex
	resolved bool
	data     NormalizedUsers
	err      error
	subs     map[int]*subscriber
	nextSub  int
}

func NewUsersQuery(c *Client) *UsersQuery {
	return &UsersQuery{
		client: c,
		subs:   make(map[int]*subscriber),
	}
}

// Refresh fetches the user list, normalizes it and notifies subscribers
// whose projections changed. The returned error is also retained for Err.
func (q *UsersQuery) Refresh(ctx context.Context) error {
	users, err := q.client.ListUsers(ctx)

	data := NormalizedUsers{
		IDs:      make([]uuid.UUID, 0, len(users)),
		Entities: make(map[uuid.UUID]User, len(users)),
	}
	for _, u := range users {
		data.IDs = append(data.IDs, u.ID)
		data.Entities[u.ID] = u
	}

	q.mu.Lock()
	q.resolved = true
	q.data = data
	q.err = err
	notifications := q.collectNotificationsLocked()
	q.mu.Unlock()

	// Subscriber callbacks run outside the lock.
	for _, n := range notifications {
		n()
	}
	return err
}

// Invalidate discards nothing by itself; it is a forced refetch, the moral
// equivalent of a mutation invalidating the cache tag.
func (q *UsersQuery) Invalidate(ctx context.Context) error {
	return q.Refresh(ctx)
}

// Resolved reports whether at least one fetch has completed, successfully or
// not. Until then consumers must render their loading branch.
func (q *UsersQuery) Resolved() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.resolved
}

// Err returns the failure of the most recent fetch, if any.
func (q *UsersQuery) Err() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.err
}

// Select runs a projection against the cached normalized result. ok is false
// while the query is unresolved, in which case the projection is not run.
func (q *UsersQuery) Select(project Projection) (value interface{}, ok bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.resolved {
		return nil, false
	}
	return project(q.data), true
}

// Subscribe registers a projection and a callback invoked whenever the
// projected value changes across refreshes. The returned function cancels
// the subscription.
func (q *UsersQuery) Subscribe(project Projection, notify func(interface{})) (cancel func()) {
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	sub := &subscriber{project: project, notify: notify}
	if q.resolved {
		sub.last = project(q.data)
	}
	q.subs[id] = sub
	q.mu.Unlock()

	return func() {
		q.mu.Lock()
		delete(q.subs, id)
		q.mu.Unlock()
	}
}

func (q *UsersQuery) collectNotificationsLocked() []func() {
	var notifications []func()
	for _, sub := range q.subs {
		next := sub.project(q.data)
		if reflect.DeepEqual(next, sub.last) {
			continue
		}
		sub.last = next
		notify, value := sub.notify, next
		notifications = append(notifications, func() { notify(value) })
	}
	return notifications
}

// OrderedUsers projects the full user list in cached order.
func OrderedUsers(data NormalizedUsers) interface{} {
	users := make([]User, 0, len(data.IDs))
	for _, id := range data.IDs {
		users = append(users, data.Entities[id])
	}
	return users
}

// UserByID projects a single entity, or nil when absent.
func UserByID(id uuid.UUID) Projection {
	return func(data NormalizedUsers) interface{} {
		if u, ok := data.Entities[id]; ok {
			return &u
		}
		return (*User)(nil)
	}
}
