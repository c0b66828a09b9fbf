package placeholder

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// User is a locally registered account. Password is stored as entered.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns the uppercased first letters of first and last name.
func (u User) Initials() string {
	return strings.ToUpper(firstRune(u.FirstName) + firstRune(u.LastName))
}

func firstRune(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Post mirrors /posts entries.
type Post struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment mirrors /comments entries. IsUserAdded marks comments created
// locally rather than fetched.
type Comment struct {
	ID          int64  `json:"id"`
	PostID      int64  `json:"postId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Body        string `json:"body"`
	IsUserAdded bool   `json:"isUserAdded,omitempty"`
}

// NewComment is the POST /comments payload; the API assigns the id.
type NewComment struct {
	PostID int64  `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Album mirrors /albums entries.
type Album struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
}

// Photo mirrors /photos entries.
type Photo struct {
	ID           int64  `json:"id"`
	AlbumID      int64  `json:"albumId"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
