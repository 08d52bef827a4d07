// Package session is the single source of truth for the authenticated user
// and their tokens. Every credential read in the program goes through a Store.
package session

// User is the authenticated account as seen by the client. IDs are always
// strings regardless of how the backend serialized them.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session holds the current credentials and user. It is replaced wholesale on
// login, register and refresh, and cleared on logout or irrecoverable 401.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Listener is invoked with the new session (nil after Clear) on every change.
type Listener func(*Session)

// Subscription deregisters a listener.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the listener. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Store persists the current session and notifies subscribers of changes.
// Notification fan-out is synchronous: Set, Clear and UpdateUser call every
// listener before returning, in no particular order.
type Store interface {
	// Get returns the current session, or nil if none is stored or the
	// persisted slot is unreadable.
	Get() *Session

	// Set replaces the entire session and notifies subscribers.
	Set(s *Session) error

	// Clear removes the session and notifies subscribers with nil. Idempotent.
	Clear() error

	// UpdateUser replaces only the user field, preserving tokens.
	// No-op (and no notification) when there is no current session.
	UpdateUser(u User) error

	// Subscribe registers a listener for every Set/Clear/UpdateUser.
	Subscribe(fn Listener) *Subscription
}
