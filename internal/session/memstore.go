package session

import "sync"

// MemStore is an in-memory Store for tests and other short-lived contexts.
type MemStore struct {
	mu     sync.Mutex
	cur    *Session
	subs   map[int]Listener
	nextID int
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{subs: make(map[int]Listener)}
}

// Get implements Store.
func (ms *MemStore) Get() *Session {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.cur == nil {
		return nil
	}
	cp := *ms.cur
	return &cp
}

// Set implements Store.
func (ms *MemStore) Set(s *Session) error {
	ms.mu.Lock()
	cp := *s
	ms.cur = &cp
	ms.mu.Unlock()
	ms.notify(s)
	return nil
}

// Clear implements Store.
func (ms *MemStore) Clear() error {
	ms.mu.Lock()
	ms.cur = nil
	ms.mu.Unlock()
	ms.notify(nil)
	return nil
}

// UpdateUser implements Store.
func (ms *MemStore) UpdateUser(u User) error {
	ms.mu.Lock()
	if ms.cur == nil {
		ms.mu.Unlock()
		return nil
	}
	ms.cur.User = u
	cp := *ms.cur
	ms.mu.Unlock()
	ms.notify(&cp)
	return nil
}

// Subscribe implements Store.
func (ms *MemStore) Subscribe(fn Listener) *Subscription {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	id := ms.nextID
	ms.nextID++
	ms.subs[id] = fn
	return &Subscription{cancel: func() {
		ms.mu.Lock()
		defer ms.mu.Unlock()
		delete(ms.subs, id)
	}}
}

func (ms *MemStore) notify(s *Session) {
	ms.mu.Lock()
	listeners := make([]Listener, 0, len(ms.subs))
	for _, fn := range ms.subs {
		listeners = append(listeners, fn)
	}
	ms.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
