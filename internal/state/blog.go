package state

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/five82/folio/internal/placeholder"
	"github.com/five82/folio/internal/storage"
)

// BlogSnapshot is a copy of the blog store at one point in time.
type BlogSnapshot struct {
	Posts        []placeholder.Post
	SelectedPost *placeholder.Post
	Comments     []placeholder.Comment
	UserComments UserComments
	IsLoading    bool
	Error        string
}

// AllCommentsForPost returns the selected post's user comments (newest
// first) followed by its API comments. Empty when no post is selected.
func (b BlogSnapshot) AllCommentsForPost() []placeholder.Comment {
	if b.SelectedPost == nil {
		return nil
	}
	user := b.UserComments.byPost[b.SelectedPost.ID]
	out := make([]placeholder.Comment, 0, len(user)+len(b.Comments))
	out = append(out, user...)
	out = append(out, b.Comments...)
	return out
}

// BlogStore holds posts and comments. Loaders block for the duration of the
// fetch and never return errors; failures surface through Snapshot().Error.
//
// Overlapping loads are neither coalesced nor cancelled. Whichever fetch
// resolves last writes the final state, and the first to resolve clears
// IsLoading.
type BlogStore struct {
	fetcher placeholder.BlogFetcher
	local   *storage.Local

	mu        sync.RWMutex
	snapshot  BlogSnapshot
	observers Observers
}

// NewBlogStore builds a BlogStore and loads any persisted user comments.
func NewBlogStore(fetcher placeholder.BlogFetcher, local *storage.Local) *BlogStore {
	s := &BlogStore{fetcher: fetcher, local: local}
	s.LoadUserComments()
	return s
}

// Subscribe registers fn to run after every state change.
func (s *BlogStore) Subscribe(fn func()) (cancel func()) {
	return s.observers.Add(fn)
}

// Snapshot returns a deep copy of the current state.
func (s *BlogStore) Snapshot() BlogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Posts = cloneSlice(s.snapshot.Posts)
	snap.Comments = cloneSlice(s.snapshot.Comments)
	snap.UserComments = s.snapshot.UserComments.clone()
	if s.snapshot.SelectedPost != nil {
		post := *s.snapshot.SelectedPost
		snap.SelectedPost = &post
	}
	return snap
}

// AllCommentsForPost is shorthand for Snapshot().AllCommentsForPost().
func (s *BlogStore) AllCommentsForPost() []placeholder.Comment {
	return s.Snapshot().AllCommentsForPost()
}

// LoadPosts fetches every post into Posts.
func (s *BlogStore) LoadPosts(ctx context.Context) {
	s.begin()
	posts, err := s.fetcher.FetchPosts(ctx)
	if err != nil {
		s.fail(err, "Failed to load posts")
		return
	}
	s.update(func(b *BlogSnapshot) {
		b.Posts = cloneSlice(posts)
		b.IsLoading = false
	})
}

// LoadPostByID fetches one post into SelectedPost.
func (s *BlogStore) LoadPostByID(ctx context.Context, id int64) {
	s.begin()
	post, err := s.fetcher.FetchPost(ctx, id)
	if err != nil {
		s.fail(err, "Failed to load post")
		return
	}
	s.update(func(b *BlogSnapshot) {
		if post != nil {
			p := *post
			b.SelectedPost = &p
		}
		b.IsLoading = false
	})
}

// LoadComments fetches the API comments for postID, then re-reads the
// persisted user comments.
func (s *BlogStore) LoadComments(ctx context.Context, postID int64) {
	s.begin()
	comments, err := s.fetcher.FetchPostComments(ctx, postID)
	if err != nil {
		s.fail(err, "Failed to load comments")
		return
	}
	s.update(func(b *BlogSnapshot) {
		b.Comments = cloneSlice(comments)
		b.IsLoading = false
	})
	s.LoadUserComments()
}

// AddUserComment puts c at the front of postID's user comments and persists
// the whole mapping. No request is made.
func (s *BlogStore) AddUserComment(postID int64, c placeholder.Comment) {
	s.mu.Lock()
	next := s.snapshot.UserComments.clone()
	next.prepend(postID, c)
	s.snapshot.UserComments = next
	s.local.Set(storage.KeyUserComments, next)
	s.mu.Unlock()

	s.observers.Notify()
}

// LoadUserComments replaces the in-memory mapping with the persisted one.
// Nothing changes when storage holds no mapping.
func (s *BlogStore) LoadUserComments() {
	saved, ok := storage.Get[UserComments](s.local, storage.KeyUserComments)
	if !ok {
		return
	}
	s.update(func(b *BlogSnapshot) { b.UserComments = saved })
}

// ClearUserComments empties the mapping and deletes it from storage.
func (s *BlogStore) ClearUserComments() {
	s.mu.Lock()
	s.snapshot.UserComments = UserComments{}
	s.local.Remove(storage.KeyUserComments)
	s.mu.Unlock()

	s.observers.Notify()
}

// Reset returns every field to its initial value. Storage is untouched.
func (s *BlogStore) Reset() {
	s.update(func(b *BlogSnapshot) { *b = BlogSnapshot{} })
}

func (s *BlogStore) begin() {
	s.update(func(b *BlogSnapshot) {
		b.IsLoading = true
		b.Error = ""
	})
}

func (s *BlogStore) fail(err error, fallback string) {
	log.Printf("blog: %s: %v", fallback, err)
	s.update(func(b *BlogSnapshot) {
		b.Error = errorMessage(err, fallback)
		b.IsLoading = false
	})
}

func (s *BlogStore) update(fn func(*BlogSnapshot)) {
	s.mu.Lock()
	fn(&s.snapshot)
	s.mu.Unlock()

	s.observers.Notify()
}

// NewUserComment builds a locally added comment stamped with now in Unix
// milliseconds.
func NewUserComment(postID int64, name, email, body string, now time.Time) placeholder.Comment {
	return placeholder.Comment{
		ID:          now.UnixMilli(),
		PostID:      postID,
		Name:        name,
		Email:       email,
		Body:        body,
		IsUserAdded: true,
	}
}
