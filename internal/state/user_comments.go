package state

import (
	"encoding/json"
	"fmt"

	"github.com/five82/folio/internal/placeholder"
)

// UserComments maps post ids to locally added comments, newest first. Post
// ids keep the order in which they were first added, and that order is what
// gets persisted: a JSON array of [postId, [comments...]] pairs.
type UserComments struct {
	order  []int64
	byPost map[int64][]placeholder.Comment
}

// For returns a copy of the comments added to postID.
func (u UserComments) For(postID int64) []placeholder.Comment {
	return cloneSlice(u.byPost[postID])
}

// PostIDs lists post ids in insertion order.
func (u UserComments) PostIDs() []int64 {
	return cloneSlice(u.order)
}

// Len reports how many posts carry user comments.
func (u UserComments) Len() int {
	return len(u.order)
}

func (u *UserComments) prepend(postID int64, c placeholder.Comment) {
	if u.byPost == nil {
		u.byPost = make(map[int64][]placeholder.Comment)
	}
	existing, ok := u.byPost[postID]
	if !ok {
		u.order = append(u.order, postID)
	}
	next := make([]placeholder.Comment, 0, len(existing)+1)
	next = append(next, c)
	next = append(next, existing...)
	u.byPost[postID] = next
}

func (u UserComments) clone() UserComments {
	if len(u.order) == 0 {
		return UserComments{}
	}
	out := UserComments{
		order:  cloneSlice(u.order),
		byPost: make(map[int64][]placeholder.Comment, len(u.byPost)),
	}
	for id, comments := range u.byPost {
		out.byPost[id] = cloneSlice(comments)
	}
	return out
}

// MarshalJSON writes the ordered pair list.
func (u UserComments) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, 0, len(u.order))
	for _, id := range u.order {
		comments := u.byPost[id]
		if comments == nil {
			comments = []placeholder.Comment{}
		}
		pairs = append(pairs, [2]any{id, comments})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON reads the ordered pair list. A repeated post id replaces the
// earlier comments but keeps the earlier position.
func (u *UserComments) UnmarshalJSON(data []byte) error {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	out := UserComments{byPost: make(map[int64][]placeholder.Comment, len(pairs))}
	for i, pair := range pairs {
		var id int64
		if err := json.Unmarshal(pair[0], &id); err != nil {
			return fmt.Errorf("entry %d post id: %w", i, err)
		}
		var comments []placeholder.Comment
		if err := json.Unmarshal(pair[1], &comments); err != nil {
			return fmt.Errorf("entry %d comments: %w", i, err)
		}
		if _, seen := out.byPost[id]; !seen {
			out.order = append(out.order, id)
		}
		out.byPost[id] = comments
	}
	*u = out
	return nil
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
