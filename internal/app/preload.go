package app

import (
	"context"
	"sync"

	"github.com/five82/folio/internal/state"
)

// Preload fetches the post and album lists in parallel and returns once both
// have resolved. Failures land in each store's Error field.
func Preload(ctx context.Context, blog *state.BlogStore, photos *state.PhotoStore) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		blog.LoadPosts(ctx)
	}()
	go func() {
		defer wg.Done()
		photos.LoadAlbums(ctx)
	}()
	wg.Wait()
}
