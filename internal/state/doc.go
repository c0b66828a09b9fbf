// Package state provides the blog and photo stores for Folio.
//
// # Overview
//
// Each store is a mutex-guarded snapshot plus a fetcher. The UI calls a
// loader, the loader marks the store as loading, performs one fetch through
// the placeholder client, and reduces the result into the snapshot. Views
// read copies through Snapshot and learn about changes through Subscribe.
//
//	UI command goroutine:            UI program loop:
//	┌──────────────────────┐        ┌──────────────────────┐
//	│ store.LoadPosts(ctx) │        │                      │
//	│   begin  → Notify ───┼───────→│ storeChangedMsg      │
//	│   fetch              │        │   store.Snapshot()   │
//	│   reduce → Notify ───┼───────→│   render             │
//	└──────────────────────┘        └──────────────────────┘
//
// # Core Types
//
// BlogStore:
//   - Posts, SelectedPost, Comments from the API
//   - UserComments added locally, persisted through storage.Local
//   - AllCommentsForPost merges user comments (newest first) ahead of API comments
//
// PhotoStore:
//   - Albums, SelectedAlbum, Photos from the API; nothing persisted
//
// Observers:
//   - Subscriber list shared by the stores and session.Store
//
// # Load Semantics
//
//	store.LoadPosts(ctx)
//	→ IsLoading = true, Error = ""
//	→ fetch
//	→ success: Posts = result, IsLoading = false
//	→ failure: Posts unchanged, Error = message, IsLoading = false
//
// Loaders never return errors. The message is the placeholder.APIError
// message when there is one, otherwise the error text, otherwise a fixed
// fallback such as "Failed to load posts".
//
// # Concurrency
//
// Reductions run under the store lock and complete before Notify is called,
// so no observer sees a half-applied update. Fetches run outside the lock.
// Two overlapping loads on one store both run to completion; the one that
// resolves last determines the final data. Nothing cancels or de-duplicates
// them.
//
// # Persistence
//
// Only BlogStore.UserComments is persisted, under storage.KeyUserComments, as
// a JSON array of [postId, [comments...]] pairs. LoadComments re-reads it
// after each successful fetch. Reset clears memory only.
package state
