// Package prefs handles Folio user preferences persistence.
// Preferences are stored through storage.Local alongside the session.
package prefs

import (
	"sync"

	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/storage"
)

// Prefs holds user preferences for Folio.
type Prefs struct {
	DarkMode bool
}

// Load reads preferences, falling back to defaults when missing or corrupt.
func Load(local *storage.Local) Prefs {
	dark, ok := storage.Get[bool](local, storage.KeyTheme)
	if !ok {
		return Prefs{}
	}
	return Prefs{DarkMode: dark}
}

// Save writes preferences.
func Save(local *storage.Local, p Prefs) {
	local.Set(storage.KeyTheme, p.DarkMode)
}

// Theme tracks the dark-mode preference and persists every change.
type Theme struct {
	local     *storage.Local
	mu        sync.RWMutex
	dark      bool
	observers state.Observers
}

// NewTheme loads the saved preference.
func NewTheme(local *storage.Local) *Theme {
	return &Theme{local: local, dark: Load(local).DarkMode}
}

// IsDarkMode reports the current preference.
func (t *Theme) IsDarkMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// SetDarkMode stores the preference.
func (t *Theme) SetDarkMode(dark bool) {
	t.mu.Lock()
	t.dark = dark
	Save(t.local, Prefs{DarkMode: dark})
	t.mu.Unlock()

	t.observers.Notify()
}

// Toggle flips the preference and returns the new value.
func (t *Theme) Toggle() bool {
	t.mu.Lock()
	t.dark = !t.dark
	dark := t.dark
	Save(t.local, Prefs{DarkMode: dark})
	t.mu.Unlock()

	t.observers.Notify()
	return dark
}

// Subscribe registers fn to run after every change.
func (t *Theme) Subscribe(fn func()) (cancel func()) {
	return t.observers.Add(fn)
}
