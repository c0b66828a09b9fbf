// Package config loads Folio's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Configuration Fields
//
//	api_base_url            = "https://jsonplaceholder.typicode.com"
//	storage_backend         = "sqlite"   # or "memory"
//	storage_path            = "~/.local/share/folio/storage.db"
//	log_path                = "~/.local/share/folio/folio.log"
//	items_per_page          = 5
//	request_timeout_seconds = 10
//
// Paths starting with ~ are expanded against the user's home directory and
// made absolute. An unknown storage_backend or malformed TOML is an error;
// everything else degrades to defaults.
package config
