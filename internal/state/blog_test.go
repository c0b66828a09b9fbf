package state

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/folio/internal/placeholder"
	"github.com/five82/folio/internal/storage"
)

type fakeBlogFetcher struct {
	mu       sync.Mutex
	posts    []placeholder.Post
	comments map[int64][]placeholder.Comment
	err      error
	calls    int
}

func (f *fakeBlogFetcher) FetchPosts(context.Context) ([]placeholder.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeBlogFetcher) FetchPost(_ context.Context, id int64) (*placeholder.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, &placeholder.APIError{Status: 404, Message: "api /posts returned status 404"}
}

func (f *fakeBlogFetcher) FetchPostComments(_ context.Context, postID int64) ([]placeholder.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.comments[postID], nil
}

var (
	testPosts = []placeholder.Post{
		{ID: 1, UserID: 1, Title: "first"},
		{ID: 2, UserID: 1, Title: "second"},
		{ID: 3, UserID: 2, Title: "third"},
	}
	apiComments = map[int64][]placeholder.Comment{
		1: {{ID: 10, PostID: 1, Body: "api a"}, {ID: 11, PostID: 1, Body: "api b"}},
	}
)

func newBlogStore(t *testing.T) (*BlogStore, *fakeBlogFetcher, *storage.Local) {
	t.Helper()
	f := &fakeBlogFetcher{posts: testPosts, comments: apiComments}
	local := storage.NewLocal(storage.NewMemoryBackend())
	return NewBlogStore(f, local), f, local
}

func TestBlogStore_LoadPostsSuccess(t *testing.T) {
	s, _, _ := newBlogStore(t)

	var loadingSeen bool
	s.Subscribe(func() {
		if s.Snapshot().IsLoading {
			loadingSeen = true
		}
	})

	s.LoadPosts(context.Background())

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Posts, testPosts) {
		t.Fatalf("Posts = %#v, want %#v", snap.Posts, testPosts)
	}
	if snap.IsLoading || snap.Error != "" {
		t.Fatalf("IsLoading=%v Error=%q, want false and empty", snap.IsLoading, snap.Error)
	}
	if !loadingSeen {
		t.Fatalf("observers never saw IsLoading=true")
	}
}

func TestBlogStore_LoadPostsFailureKeepsPosts(t *testing.T) {
	s, f, _ := newBlogStore(t)
	s.LoadPosts(context.Background())

	f.err = &placeholder.APIError{Status: 500, Message: "api /posts returned status 500"}
	s.LoadPosts(context.Background())

	snap := s.Snapshot()
	if len(snap.Posts) != 3 {
		t.Fatalf("Posts = %d items, want previous 3", len(snap.Posts))
	}
	if snap.Error != "api /posts returned status 500" || snap.IsLoading {
		t.Fatalf("Error=%q IsLoading=%v", snap.Error, snap.IsLoading)
	}

	// A successful retry clears the error.
	f.err = nil
	s.LoadPosts(context.Background())
	if got := s.Snapshot().Error; got != "" {
		t.Fatalf("Error after retry = %q, want empty", got)
	}
}

func TestBlogStore_FailureOnFirstLoadLeavesPostsEmpty(t *testing.T) {
	s, f, _ := newBlogStore(t)
	f.err = errors.New("connection refused")

	s.LoadPosts(context.Background())

	snap := s.Snapshot()
	if len(snap.Posts) != 0 || snap.Error != "connection refused" {
		t.Fatalf("Posts=%v Error=%q", snap.Posts, snap.Error)
	}
}

func TestErrorMessage_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api message", &placeholder.APIError{Message: "boom"}, "boom"},
		{"wrapped api", errors.Join(errors.New(""), &placeholder.APIError{Message: "inner"}), "inner"},
		{"plain", errors.New("plain"), "plain"},
		{"empty text", errors.New(""), "Failed to load posts"},
		{"nil", nil, "Failed to load posts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.err, "Failed to load posts"); got != tt.want {
				t.Fatalf("errorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlogStore_LoadPostByID(t *testing.T) {
	s, _, _ := newBlogStore(t)

	s.LoadPostByID(context.Background(), 2)
	snap := s.Snapshot()
	if snap.SelectedPost == nil || snap.SelectedPost.Title != "second" {
		t.Fatalf("SelectedPost = %#v, want post 2", snap.SelectedPost)
	}

	s.LoadPostByID(context.Background(), 99)
	snap = s.Snapshot()
	if snap.SelectedPost == nil || snap.SelectedPost.ID != 2 {
		t.Fatalf("failed load replaced SelectedPost: %#v", snap.SelectedPost)
	}
	if snap.Error == "" {
		t.Fatalf("Error empty after failed load")
	}
}

func TestBlogStore_AllCommentsForPostOrdering(t *testing.T) {
	s, _, _ := newBlogStore(t)
	ctx := context.Background()

	if got := s.AllCommentsForPost(); len(got) != 0 {
		t.Fatalf("AllCommentsForPost with no selection = %#v, want empty", got)
	}

	now := time.UnixMilli(1_700_000_000_000)
	c1 := NewUserComment(1, "me", "me@x.io", "first", now)
	c2 := NewUserComment(1, "me", "me@x.io", "second", now.Add(time.Second))
	other := NewUserComment(2, "me", "me@x.io", "elsewhere", now)

	s.AddUserComment(1, c1)
	s.LoadPostByID(ctx, 1)
	s.LoadComments(ctx, 1)

	all := s.AllCommentsForPost()
	if len(all) != 3 || all[0] != c1 {
		t.Fatalf("after one add = %#v, want c1 first", all)
	}

	s.AddUserComment(1, c2)
	s.AddUserComment(2, other)

	all = s.AllCommentsForPost()
	want := []placeholder.Comment{c2, c1, apiComments[1][0], apiComments[1][1]}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("AllCommentsForPost = %#v, want %#v", all, want)
	}
}

func TestBlogStore_AddUserCommentPersistsOrderedPairs(t *testing.T) {
	backend := storage.NewMemoryBackend()
	s := NewBlogStore(&fakeBlogFetcher{}, storage.NewLocal(backend))

	c := placeholder.Comment{ID: 5, PostID: 7, Name: "n", Email: "e", Body: "b", IsUserAdded: true}
	s.AddUserComment(7, c)
	s.AddUserComment(3, placeholder.Comment{ID: 6, PostID: 3, IsUserAdded: true})

	raw, ok, _ := backend.GetItem(storage.DefaultPrefix + storage.KeyUserComments)
	if !ok {
		t.Fatalf("user comments not persisted")
	}
	want := `[[7,[{"id":5,"postId":7,"name":"n","email":"e","body":"b","isUserAdded":true}]],` +
		`[3,[{"id":6,"postId":3,"name":"","email":"","body":"","isUserAdded":true}]]]`
	if raw != want {
		t.Fatalf("persisted = %s\nwant        %s", raw, want)
	}
}

func TestBlogStore_UserCommentsSurviveRestart(t *testing.T) {
	backend := storage.NewMemoryBackend()
	first := NewBlogStore(&fakeBlogFetcher{}, storage.NewLocal(backend))
	c := NewUserComment(4, "n", "e", "kept", time.Now())
	first.AddUserComment(4, c)

	second := NewBlogStore(&fakeBlogFetcher{}, storage.NewLocal(backend))
	got := second.Snapshot().UserComments.For(4)
	if len(got) != 1 || got[0] != c {
		t.Fatalf("restored comments = %#v, want [%#v]", got, c)
	}
}

func TestBlogStore_LoadCommentsResyncsUserComments(t *testing.T) {
	backend := storage.NewMemoryBackend()
	f := &fakeBlogFetcher{posts: testPosts, comments: apiComments}
	s := NewBlogStore(f, storage.NewLocal(backend))

	// Another writer adds a comment behind the store's back.
	other := NewBlogStore(f, storage.NewLocal(backend))
	c := NewUserComment(1, "n", "e", "external", time.Now())
	other.AddUserComment(1, c)

	if s.Snapshot().UserComments.Len() != 0 {
		t.Fatalf("store picked up comment before resync")
	}
	s.LoadComments(context.Background(), 1)
	if got := s.Snapshot().UserComments.For(1); len(got) != 1 || got[0] != c {
		t.Fatalf("UserComments after LoadComments = %#v", got)
	}
}

func TestBlogStore_LoadCommentsFailureKeepsComments(t *testing.T) {
	s, f, _ := newBlogStore(t)
	s.LoadComments(context.Background(), 1)

	f.err = errors.New("timeout")
	s.LoadComments(context.Background(), 1)

	snap := s.Snapshot()
	if len(snap.Comments) != 2 || snap.Error != "timeout" {
		t.Fatalf("Comments=%d Error=%q, want 2 and timeout", len(snap.Comments), snap.Error)
	}
}

func TestBlogStore_ClearUserComments(t *testing.T) {
	s, _, local := newBlogStore(t)
	s.AddUserComment(1, NewUserComment(1, "n", "e", "b", time.Now()))

	s.ClearUserComments()

	if s.Snapshot().UserComments.Len() != 0 {
		t.Fatalf("in-memory user comments not cleared")
	}
	if _, ok := storage.Get[UserComments](local, storage.KeyUserComments); ok {
		t.Fatalf("persisted user comments not removed")
	}
}

func TestBlogStore_CorruptUserCommentsIgnored(t *testing.T) {
	backend := storage.NewMemoryBackend()
	_ = backend.SetItem(storage.DefaultPrefix+storage.KeyUserComments, `{"not":"pairs"}`)

	s := NewBlogStore(&fakeBlogFetcher{}, storage.NewLocal(backend))
	if s.Snapshot().UserComments.Len() != 0 {
		t.Fatalf("corrupt mapping loaded")
	}
}

func TestBlogStore_ResetRestoresInitialState(t *testing.T) {
	s, f, _ := newBlogStore(t)
	ctx := context.Background()
	s.LoadPosts(ctx)
	s.LoadPostByID(ctx, 1)
	s.LoadComments(ctx, 1)
	s.AddUserComment(1, NewUserComment(1, "n", "e", "b", time.Now()))
	f.err = errors.New("boom")
	s.LoadPosts(ctx)

	s.Reset()

	snap := s.Snapshot()
	if snap.Posts != nil || snap.SelectedPost != nil || snap.Comments != nil ||
		snap.UserComments.Len() != 0 || snap.IsLoading || snap.Error != "" {
		t.Fatalf("snapshot after Reset = %#v, want zero", snap)
	}
}

func TestBlogStore_SnapshotIsIndependent(t *testing.T) {
	s, _, _ := newBlogStore(t)
	s.LoadPosts(context.Background())
	s.LoadPostByID(context.Background(), 1)
	s.AddUserComment(1, placeholder.Comment{ID: 1, Body: "orig"})

	snap := s.Snapshot()
	snap.Posts[0].Title = "mutated"
	snap.SelectedPost.Title = "mutated"
	snap.UserComments.byPost[1][0].Body = "mutated"

	again := s.Snapshot()
	if again.Posts[0].Title != "first" || again.SelectedPost.Title != "first" {
		t.Fatalf("Snapshot shares post data with the store")
	}
	if again.UserComments.For(1)[0].Body != "orig" {
		t.Fatalf("Snapshot shares user comments with the store")
	}
}

func TestNewUserComment(t *testing.T) {
	now := time.UnixMilli(1_712_345_678_901)
	c := NewUserComment(9, "Jane", "jane@x.io", "hello", now)
	if c.ID != 1_712_345_678_901 || c.PostID != 9 || !c.IsUserAdded {
		t.Fatalf("NewUserComment = %#v", c)
	}
}

// gatedFetcher lets a test decide the order in which overlapping fetches resolve.
type gatedFetcher struct {
	fakeBlogFetcher
	gates map[string]chan []placeholder.Post
}

func (g *gatedFetcher) FetchPosts(ctx context.Context) ([]placeholder.Post, error) {
	tag, _ := ctx.Value(gateKey{}).(string)
	return <-g.gates[tag], nil
}

type gateKey struct{}

func TestBlogStore_LastResolvedWins(t *testing.T) {
	g := &gatedFetcher{gates: map[string]chan []placeholder.Post{
		"first":  make(chan []placeholder.Post),
		"second": make(chan []placeholder.Post),
	}}
	s := NewBlogStore(g, storage.NewLocal(nil))

	done := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	for _, tag := range []string{"first", "second"} {
		go func(tag string) {
			defer close(done[tag])
			s.LoadPosts(context.WithValue(context.Background(), gateKey{}, tag))
		}(tag)
	}

	// The later call resolves first, the earlier call resolves last.
	g.gates["second"] <- []placeholder.Post{{ID: 2}}
	<-done["second"]
	g.gates["first"] <- []placeholder.Post{{ID: 1}}
	<-done["first"]

	snap := s.Snapshot()
	if len(snap.Posts) != 1 || snap.Posts[0].ID != 1 {
		t.Fatalf("Posts = %#v, want the last resolved fetch", snap.Posts)
	}
	if snap.IsLoading {
		t.Fatalf("IsLoading still true after both fetches resolved")
	}
}
