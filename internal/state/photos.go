package state

import (
	"context"
	"log"
	"sync"

	"github.com/five82/folio/internal/placeholder"
)

// PhotoSnapshot is a copy of the photo store at one point in time.
type PhotoSnapshot struct {
	Albums        []placeholder.Album
	SelectedAlbum *placeholder.Album
	Photos        []placeholder.Photo
	IsLoading     bool
	Error         string
}

// PhotoStore holds albums and photos. It follows the same loading and
// last-resolved-wins rules as BlogStore and persists nothing.
type PhotoStore struct {
	fetcher placeholder.PhotoFetcher

	mu        sync.RWMutex
	snapshot  PhotoSnapshot
	observers Observers
}

// NewPhotoStore builds an empty PhotoStore.
func NewPhotoStore(fetcher placeholder.PhotoFetcher) *PhotoStore {
	return &PhotoStore{fetcher: fetcher}
}

// Subscribe registers fn to run after every state change.
func (s *PhotoStore) Subscribe(fn func()) (cancel func()) {
	return s.observers.Add(fn)
}

// Snapshot returns a deep copy of the current state.
func (s *PhotoStore) Snapshot() PhotoSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Albums = cloneSlice(s.snapshot.Albums)
	snap.Photos = cloneSlice(s.snapshot.Photos)
	if s.snapshot.SelectedAlbum != nil {
		album := *s.snapshot.SelectedAlbum
		snap.SelectedAlbum = &album
	}
	return snap
}

// LoadAlbums fetches every album into Albums.
func (s *PhotoStore) LoadAlbums(ctx context.Context) {
	s.begin()
	albums, err := s.fetcher.FetchAlbums(ctx)
	if err != nil {
		s.fail(err, "Failed to load albums")
		return
	}
	s.update(func(p *PhotoSnapshot) {
		p.Albums = cloneSlice(albums)
		p.IsLoading = false
	})
}

// LoadAlbumByID fetches one album into SelectedAlbum.
func (s *PhotoStore) LoadAlbumByID(ctx context.Context, id int64) {
	s.begin()
	album, err := s.fetcher.FetchAlbum(ctx, id)
	if err != nil {
		s.fail(err, "Failed to load album")
		return
	}
	s.update(func(p *PhotoSnapshot) {
		if album != nil {
			a := *album
			p.SelectedAlbum = &a
		}
		p.IsLoading = false
	})
}

// LoadPhotosByAlbumID fetches the photos of albumID into Photos.
func (s *PhotoStore) LoadPhotosByAlbumID(ctx context.Context, albumID int64) {
	s.begin()
	photos, err := s.fetcher.FetchAlbumPhotos(ctx, albumID)
	if err != nil {
		s.fail(err, "Failed to load photos")
		return
	}
	s.update(func(p *PhotoSnapshot) {
		p.Photos = cloneSlice(photos)
		p.IsLoading = false
	})
}

// Reset returns every field to its initial value.
func (s *PhotoStore) Reset() {
	s.update(func(p *PhotoSnapshot) { *p = PhotoSnapshot{} })
}

func (s *PhotoStore) begin() {
	s.update(func(p *PhotoSnapshot) {
		p.IsLoading = true
		p.Error = ""
	})
}

func (s *PhotoStore) fail(err error, fallback string) {
	log.Printf("photos: %s: %v", fallback, err)
	s.update(func(p *PhotoSnapshot) {
		p.Error = errorMessage(err, fallback)
		p.IsLoading = false
	})
}

func (s *PhotoStore) update(fn func(*PhotoSnapshot)) {
	s.mu.Lock()
	fn(&s.snapshot)
	s.mu.Unlock()

	s.observers.Notify()
}
