// Package ui provides the Bubble Tea front end for Folio.
//
// # Architecture Overview
//
// The UI owns no domain state. It observes session.Store, state.BlogStore,
// state.PhotoStore and prefs.Theme, copies their snapshots into the Model on
// every change, and renders from those copies. Loads run as tea.Cmd
// functions, so the blocking store loaders never run on the program loop.
//
// # Package Structure
//
//   - app.go: Model, Update/View, view routing, commands and Run
//   - forms.go: login, signup and add-comment forms built from textinput
//   - posts.go: paginated post list and the post detail viewport
//   - albums.go: paginated album list and album photos
//   - header.go: status bar and per-view command bar
//   - help.go: help overlay generated from the key map
//   - keys.go: key bindings
//   - theme.go: the light (Dawnfox) and dark (Nightfox) themes
//
// # Views
//
//   - Log in / Sign up: shown whenever no user is logged in
//   - Blog: posts, paged by the configured items-per-page
//   - Post: title, body, then user comments (newest first) ahead of API comments
//   - Add comment: prefilled with the current user's name and email
//   - Albums and Photos: album list and one album's photos
//
// # Event Flow
//
//  1. Run subscribes to every store; each notification sends storeChangedMsg
//  2. Key handlers change the view or return a command that calls a loader
//  3. The loader notifies as it starts and as it resolves
//  4. storeChangedMsg re-reads snapshots, clamps paging, and falls back to
//     the login view when the session ends
package ui
