package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the session as a single JSON document on disk, the same
// way the CLI stores other credentials. There is no separate in-memory copy:
// Get re-reads the file, so every caller observes the last write regardless of
// which component made it.
type FileStore struct {
	path string

	mu     sync.Mutex
	subs   map[int]Listener
	nextID int

	// logf reports corrupt-slot reads. Overridable in tests.
	logf func(format string, args ...any)
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store persisting to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		subs: make(map[int]Listener),
		logf: log.Printf,
	}
}

// Get implements Store. A missing file means no session; a file that fails to
// parse is treated the same way, logged rather than surfaced.
func (fs *FileStore) Get() *Session {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		fs.logf("session: discarding corrupt session file %s: %v", fs.path, err)
		return nil
	}
	return &s
}

// Set implements Store.
func (fs *FileStore) Set(s *Session) error {
	if err := fs.write(s); err != nil {
		return err
	}
	fs.notify(s)
	return nil
}

// Clear implements Store.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	fs.notify(nil)
	return nil
}

// UpdateUser implements Store.
func (fs *FileStore) UpdateUser(u User) error {
	cur := fs.Get()
	if cur == nil {
		return nil
	}
	cur.User = u
	if err := fs.write(cur); err != nil {
		return err
	}
	fs.notify(cur)
	return nil
}

// Subscribe implements Store.
func (fs *FileStore) Subscribe(fn Listener) *Subscription {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	id := fs.nextID
	fs.nextID++
	fs.subs[id] = fn
	return &Subscription{cancel: func() {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		delete(fs.subs, id)
	}}
}

// write persists the session with mode 0600, creating the parent directory
// if needed.
func (fs *FileStore) write(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0600)
}

// notify calls every subscriber before returning. Listeners run outside the
// lock so they may call back into the store.
func (fs *FileStore) notify(s *Session) {
	fs.mu.Lock()
	listeners := make([]Listener, 0, len(fs.subs))
	for _, fn := range fs.subs {
		listeners = append(listeners, fn)
	}
	fs.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
