package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// BlogFetcher reads posts and comments.
type BlogFetcher interface {
	FetchPosts(ctx context.Context) ([]Post, error)
	FetchPost(ctx context.Context, id int64) (*Post, error)
	FetchPostComments(ctx context.Context, postID int64) ([]Comment, error)
}

// PhotoFetcher reads albums and photos.
type PhotoFetcher interface {
	FetchAlbums(ctx context.Context) ([]Album, error)
	FetchAlbum(ctx context.Context, id int64) (*Album, error)
	FetchAlbumPhotos(ctx context.Context, albumID int64) ([]Photo, error)
}

// Ensure Client implements both fetchers at compile time.
var (
	_ BlogFetcher  = (*Client)(nil)
	_ PhotoFetcher = (*Client)(nil)
)

// APIError is returned for every request failure. Message is meant for
// display; Status is zero when no HTTP response was received.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Client talks to the JSONPlaceholder REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL        = "https://jsonplaceholder.typicode.com"
	defaultUserAgent      = "folio/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultRequestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the resolved API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPosts retrieves every post.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPost retrieves a single post.
func (c *Client) FetchPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+itoa(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FetchPostComments retrieves the comments served for a post.
func (c *Client) FetchPostComments(ctx context.Context, postID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/posts/"+itoa(postID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment submits a comment. JSONPlaceholder echoes it back with an id
// but does not persist it.
func (c *Client) AddComment(ctx context.Context, comment NewComment) (*Comment, error) {
	var created Comment
	if err := c.do(ctx, http.MethodPost, "/comments", comment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FetchAlbums retrieves every album.
func (c *Client) FetchAlbums(ctx context.Context) ([]Album, error) {
	var albums []Album
	if err := c.do(ctx, http.MethodGet, "/albums", nil, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// FetchAlbum retrieves a single album.
func (c *Client) FetchAlbum(ctx context.Context, id int64) (*Album, error) {
	var album Album
	if err := c.do(ctx, http.MethodGet, "/albums/"+itoa(id), nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// FetchAlbumPhotos retrieves the photos of one album.
func (c *Client) FetchAlbumPhotos(ctx context.Context, albumID int64) ([]Photo, error) {
	var photos []Photo
	if err := c.do(ctx, http.MethodGet, "/albums/"+itoa(albumID)+"/photos", nil, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// FetchPhotos retrieves every photo across all albums.
func (c *Client) FetchPhotos(ctx context.Context) ([]Photo, error) {
	var photos []Photo
	if err := c.do(ctx, http.MethodGet, "/photos", nil, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (c *Client) do(ctx context.Context, method, rel string, body, dest any) error {
	if c == nil {
		return &APIError{Message: "client is nil"}
	}
	reqURL := *c.baseURL
	reqURL.Path = path.Join(c.baseURL.Path, rel)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &APIError{Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("%s %s failed", method, rel), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("api %s returned status %d", rel, resp.StatusCode),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
