package client

import "sync"

// Status tracks the lifecycle of an asynchronous fetch or mutation. Each
// resource moves idle -> loading -> (succeeded | failed); a failure keeps the
// previously loaded data visible.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Collection holds a list resource together with its load state. Mutations
// follow fixed, order-sensitive semantics: a list fetch replaces the whole
// slice, a create prepends, an update replaces in place by ID, a delete
// filter-removes by ID.
type Collection[T any] struct {
	mu     sync.RWMutex
	status Status
	err    string
	items  []T
	idOf   func(T) string
}

// NewCollection builds an empty idle collection keyed by the given ID
// function.
func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{status: StatusIdle, idOf: idOf}
}

// Begin marks the collection loading. Existing items stay visible.
func (c *Collection[T]) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusLoading
	c.err = ""
}

// Replace installs a freshly fetched list, discarding whatever was held.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusSucceeded
	c.err = ""
	c.items = append([]T(nil), items...)
}

// Prepend inserts a newly created item at the head of the list.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusSucceeded
	c.err = ""
	c.items = append([]T{item}, c.items...)
}

// ReplaceByID swaps the held item with the same ID for the updated one,
// keeping its position. An unknown ID leaves the list untouched.
func (c *Collection[T]) ReplaceByID(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusSucceeded
	c.err = ""
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
}

// RemoveByID filters out the item with the given ID.
func (c *Collection[T]) RemoveByID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusSucceeded
	c.err = ""
	filtered := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			filtered = append(filtered, item)
		}
	}
	c.items = filtered
}

// Fail records the server error without altering the held items.
func (c *Collection[T]) Fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusFailed
	c.err = message
}

// Snapshot returns the current status, items and error message.
func (c *Collection[T]) Snapshot() (Status, []T, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, append([]T(nil), c.items...), c.err
}

// Session holds the authenticated user and token. It is the client-side
// counterpart of the server's token state; the login response is the single
// synchronization point between the two.
type Session struct {
	mu     sync.RWMutex
	status Status
	err    string
	user   *User
	token  string
}

// NewSession returns an empty signed-out session.
func NewSession() *Session {
	return &Session{status: StatusIdle}
}

// Begin marks an auth call in flight.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusLoading
	s.err = ""
}

// Establish installs the user and token from a login or register response.
func (s *Session) Establish(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusSucceeded
	s.err = ""
	s.user = &user
	s.token = token
}

// Fail records the auth error; any previous session stays intact.
func (s *Session) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = message
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.err = ""
	s.user = nil
	s.token = ""
}

// Token returns the held bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the held user, nil when signed out.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Snapshot returns the current status and error message.
func (s *Session) Snapshot() (Status, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.err
}
