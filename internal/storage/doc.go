// Package storage provides the local persistence layer for Folio.
//
// # Overview
//
// Folio keeps three kinds of state on the user's machine: the signed-up user
// list, the signed-in user, and comments the user added to posts. A theme
// preference rides along. All of it goes through Local, a small JSON adapter
// that namespaces keys and never lets an encode, decode, or backend failure
// escape to the caller.
//
// # Backends
//
//   - MemoryBackend: map-backed, used in tests and when storage_backend is "memory"
//   - SQLiteBackend: one kv table in a SQLite file, the default durable store
//
// Both satisfy Backend, so stores can be exercised against either.
//
// # Key Namespacing
//
// Local prepends DefaultPrefix ("blog_app_") to every key. Clear removes only
// keys carrying that prefix:
//
//	local := storage.NewLocal(backend)
//	local.Set("users", users)        // stored as blog_app_users
//	users, ok := storage.Get[[]placeholder.User](local, "users")
//	local.Clear()                    // other_key in backend survives
//
// # Failure Handling
//
//   - Set: encode failure is logged and the write is skipped entirely
//   - Get: missing keys and undecodable values both report ok=false
//   - Remove/Clear: backend errors are logged
//
// There is no transactional grouping across keys; each Set is independent.
package storage
