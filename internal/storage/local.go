package storage

import (
	"encoding/json"
	"log"
	"strings"
)

// DefaultPrefix namespaces every key written through Local.
const DefaultPrefix = "blog_app_"

// Keys shared by the stores that persist through Local.
const (
	KeyCurrentUser  = "current_user"
	KeyUsers        = "users"
	KeyUserComments = "user_comments"
	KeyTheme        = "theme"
)

// Local is the JSON persistence adapter over a Backend. Every failure is
// logged and swallowed; callers observe a skipped write or a missing value.
type Local struct {
	backend Backend
	prefix  string
}

// NewLocal wraps backend using DefaultPrefix. A nil backend gets a fresh
// MemoryBackend.
func NewLocal(backend Backend) *Local {
	return NewLocalWithPrefix(backend, DefaultPrefix)
}

// NewLocalWithPrefix wraps backend using a caller-chosen namespace.
func NewLocalWithPrefix(backend Backend, prefix string) *Local {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Local{backend: backend, prefix: prefix}
}

// Set encodes value as JSON and stores it under key.
func (l *Local) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("storage: encode %q failed: %v", key, err)
		return
	}
	if err := l.backend.SetItem(l.prefix+key, string(data)); err != nil {
		log.Printf("storage: write %q failed: %v", key, err)
	}
}

// Get decodes the value stored under key into a T. The boolean is false when
// the key is absent or the stored text does not decode.
func Get[T any](l *Local, key string) (T, bool) {
	var zero T
	raw, ok, err := l.backend.GetItem(l.prefix + key)
	if err != nil {
		log.Printf("storage: read %q failed: %v", key, err)
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Printf("storage: decode %q failed: %v", key, err)
		return zero, false
	}
	return value, true
}

// Remove deletes key.
func (l *Local) Remove(key string) {
	if err := l.backend.RemoveItem(l.prefix + key); err != nil {
		log.Printf("storage: remove %q failed: %v", key, err)
	}
}

// Clear deletes every key under the adapter's prefix and leaves other keys
// in the backend alone.
func (l *Local) Clear() {
	keys, err := l.backend.Keys()
	if err != nil {
		log.Printf("storage: list keys failed: %v", err)
		return
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, l.prefix) {
			continue
		}
		if err := l.backend.RemoveItem(k); err != nil {
			log.Printf("storage: remove %q failed: %v", k, err)
		}
	}
}
