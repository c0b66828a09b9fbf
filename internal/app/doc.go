// Package app provides the orchestration layer for the Folio application.
//
// # Overview
//
// This package wires together configuration, storage, the API client, the
// stores, and the UI. It is the composition root: every store is constructed
// here exactly once and handed to the UI explicitly.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/folio/config.toml
//	       ├─────> tea.LogToFile()        Route log output away from the screen
//	       ├─────> openBackend()          SQLite file or in-memory map
//	       ├─────> fakeapi.Start()        Only with -offline
//	       ├─────> placeholder.NewClient() HTTP client
//	       ├─────> Wire()                 Session, blog, photo, theme stores
//	       ├─────> Preload()              Posts + albums when already signed in
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Malformed config file or unknown storage backend
//   - Log file or storage database cannot be opened
//   - Invalid API base URL
//
// Everything after startup is recovered inside the stores: fetch failures
// become store error messages, storage failures are logged.
package app
