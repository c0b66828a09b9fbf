package prefs

import (
	"testing"

	"github.com/five82/folio/internal/storage"
)

func TestLoad_MissingUsesDefaults(t *testing.T) {
	p := Load(storage.NewLocal(storage.NewMemoryBackend()))
	if p.DarkMode {
		t.Fatalf("DarkMode = true, want false by default")
	}
}

func TestLoad_CorruptValueFallsBackToDefault(t *testing.T) {
	backend := storage.NewMemoryBackend()
	_ = backend.SetItem(storage.DefaultPrefix+storage.KeyTheme, `"dark"`)

	if p := Load(storage.NewLocal(backend)); p.DarkMode {
		t.Fatalf("DarkMode = true for a non-boolean value")
	}
}

func TestSave_WritesBooleanUnderThemeKey(t *testing.T) {
	backend := storage.NewMemoryBackend()
	Save(storage.NewLocal(backend), Prefs{DarkMode: true})

	raw, ok, _ := backend.GetItem(storage.DefaultPrefix + storage.KeyTheme)
	if !ok || raw != "true" {
		t.Fatalf("stored theme = %q, %v, want true", raw, ok)
	}
}

func TestTheme_TogglePersistsAndNotifies(t *testing.T) {
	backend := storage.NewMemoryBackend()
	theme := NewTheme(storage.NewLocal(backend))

	calls := 0
	theme.Subscribe(func() { calls++ })

	if !theme.Toggle() || !theme.IsDarkMode() {
		t.Fatalf("Toggle did not enable dark mode")
	}
	if reloaded := NewTheme(storage.NewLocal(backend)); !reloaded.IsDarkMode() {
		t.Fatalf("dark mode not persisted")
	}

	theme.SetDarkMode(false)
	if theme.IsDarkMode() || Load(storage.NewLocal(backend)).DarkMode {
		t.Fatalf("SetDarkMode(false) not applied")
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}
