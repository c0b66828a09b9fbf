package storage

import (
	"bytes"
	"log"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type sample struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestLocal_SetWritesPrefixedJSON(t *testing.T) {
	backend := NewMemoryBackend()
	local := NewLocal(backend)

	local.Set("user", map[string]string{"name": "Alice"})

	raw, ok, _ := backend.GetItem(DefaultPrefix + "user")
	if !ok {
		t.Fatalf("backend missing %q", DefaultPrefix+"user")
	}
	if raw != `{"name":"Alice"}` {
		t.Fatalf("raw = %q, want %q", raw, `{"name":"Alice"}`)
	}
}

func TestLocal_RoundTrip(t *testing.T) {
	local := NewLocal(NewMemoryBackend())

	want := sample{Name: "Bob", Tags: []string{"a", "b"}, Count: 3}
	local.Set("sample", want)

	got, ok := Get[sample](local, "sample")
	if !ok {
		t.Fatalf("Get returned ok=false, want true")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Get = %#v, want %#v", got, want)
	}

	local.Set("flag", true)
	flag, ok := Get[bool](local, "flag")
	if !ok || !flag {
		t.Fatalf("Get[bool] = %v, %v, want true, true", flag, ok)
	}
}

func TestLocal_GetMissingKey(t *testing.T) {
	local := NewLocal(NewMemoryBackend())

	got, ok := Get[sample](local, "nonexistent")
	if ok {
		t.Fatalf("Get returned ok=true for missing key")
	}
	if !reflect.DeepEqual(got, sample{}) {
		t.Fatalf("Get = %#v, want zero value", got)
	}
}

func TestLocal_RemoveDeletesKey(t *testing.T) {
	local := NewLocal(NewMemoryBackend())
	local.Set("user", sample{Name: "Charlie"})

	local.Remove("user")

	if _, ok := Get[sample](local, "user"); ok {
		t.Fatalf("Get after Remove returned ok=true")
	}
	// Removing again is harmless.
	local.Remove("user")
}

func TestLocal_ClearOnlyRemovesPrefixedKeys(t *testing.T) {
	backend := NewMemoryBackend()
	_ = backend.SetItem(DefaultPrefix+"user", "1")
	_ = backend.SetItem(DefaultPrefix+"settings", "2")
	_ = backend.SetItem("other_key", "3")

	NewLocal(backend).Clear()

	keys, _ := backend.Keys()
	if len(keys) != 1 || keys[0] != "other_key" {
		t.Fatalf("keys after Clear = %v, want [other_key]", keys)
	}
	if v, _, _ := backend.GetItem("other_key"); v != "3" {
		t.Fatalf("other_key = %q, want 3", v)
	}
}

func TestLocal_DecodeFailureReturnsMissingAndLogs(t *testing.T) {
	buf := captureLog(t)
	backend := NewMemoryBackend()
	_ = backend.SetItem(DefaultPrefix+"bad", "invalid_json")

	_, ok := Get[sample](NewLocal(backend), "bad")
	if ok {
		t.Fatalf("Get returned ok=true for corrupt value")
	}
	if !strings.Contains(buf.String(), "decode") {
		t.Fatalf("log = %q, want decode failure logged", buf.String())
	}
}

func TestLocal_EncodeFailureSkipsWriteAndLogs(t *testing.T) {
	buf := captureLog(t)
	backend := NewMemoryBackend()
	local := NewLocal(backend)

	local.Set("nan", math.NaN())
	local.Set("chan", make(chan int))

	keys, _ := backend.Keys()
	if len(keys) != 0 {
		t.Fatalf("keys = %v, want none written", keys)
	}
	if strings.Count(buf.String(), "encode") != 2 {
		t.Fatalf("log = %q, want two encode failures", buf.String())
	}
}

func TestLocal_CustomPrefixIsolatesNamespaces(t *testing.T) {
	backend := NewMemoryBackend()
	a := NewLocalWithPrefix(backend, "a_")
	b := NewLocalWithPrefix(backend, "b_")

	a.Set("k", 1)
	b.Set("k", 2)
	a.Clear()

	if _, ok := Get[int](a, "k"); ok {
		t.Fatalf("a still has k after Clear")
	}
	if v, ok := Get[int](b, "k"); !ok || v != 2 {
		t.Fatalf("b.k = %v, %v, want 2, true", v, ok)
	}
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite returned error: %v", err)
	}
	local := NewLocal(first)
	local.Set("user", sample{Name: "Dana", Count: 1})
	local.Set("user", sample{Name: "Dana", Count: 2})
	_ = first.SetItem("other_key", "x")
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	local = NewLocal(second)
	got, ok := Get[sample](local, "user")
	if !ok || got.Count != 2 {
		t.Fatalf("Get = %#v, %v, want Count=2", got, ok)
	}

	local.Clear()
	keys, err := second.Keys()
	if err != nil {
		t.Fatalf("Keys returned error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "other_key" {
		t.Fatalf("keys after Clear = %v, want [other_key]", keys)
	}
}

func TestMemoryBackend_ZeroValueUsable(t *testing.T) {
	var m MemoryBackend
	if err := m.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if v, ok, _ := m.GetItem("k"); !ok || v != "v" {
		t.Fatalf("GetItem = %q, %v, want v, true", v, ok)
	}
}
