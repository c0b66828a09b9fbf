package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/config"
	"github.com/five82/folio/internal/fakeapi"
	"github.com/five82/folio/internal/placeholder"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/session"
	"github.com/five82/folio/internal/state"
	"github.com/five82/folio/internal/storage"
	"github.com/five82/folio/internal/ui"
)

// Options configure the Folio application.
type Options struct {
	ConfigPath string
	Offline    bool // serve the bundled demo dataset instead of the public API
}

// Services is one application session's worth of stores, all sharing a
// single storage adapter.
type Services struct {
	Session *session.Store
	Blog    *state.BlogStore
	Photos  *state.PhotoStore
	Theme   *prefs.Theme
	Client  *placeholder.Client
	Local   *storage.Local
}

// Wire builds the stores over client and local. Logging out resets the blog
// and photo stores so the next user starts clean.
func Wire(client *placeholder.Client, local *storage.Local) *Services {
	svc := &Services{
		Client: client,
		Local:  local,
		Blog:   state.NewBlogStore(client, local),
		Photos: state.NewPhotoStore(client),
		Theme:  prefs.NewTheme(local),
	}
	svc.Session = session.New(local, session.WithLogoutHook(func() {
		svc.Blog.Reset()
		svc.Photos.Reset()
	}))
	return svc
}

// Run boots the Folio TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeBackend()

	baseURL := cfg.APIBaseURL
	if opts.Offline {
		baseURL, err = fakeapi.New(fakeapi.Seed()).Start(ctx)
		if err != nil {
			return fmt.Errorf("start offline api: %w", err)
		}
	}

	client, err := placeholder.NewClient(baseURL, placeholder.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	svc := Wire(client, storage.NewLocal(backend))

	// Populate the stores before the UI starts when a session already exists
	if svc.Session.IsAuthenticated() {
		Preload(ctx, svc.Blog, svc.Photos)
	}

	return ui.Run(ctx, ui.Options{
		Session:      svc.Session,
		Blog:         svc.Blog,
		Photos:       svc.Photos,
		Theme:        svc.Theme,
		ItemsPerPage: cfg.ItemsPerPage,
	})
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "folio")
}

func openBackend(cfg config.Config) (storage.Backend, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemoryBackend(), func() {}, nil
	default:
		db, err := storage.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}
