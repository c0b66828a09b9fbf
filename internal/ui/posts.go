package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/pagination"
	"github.com/five82/folio/internal/placeholder"
)

// handlePostsKey processes keyboard input for the posts list.
func (m Model) handlePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := pagination.Page(m.postPager, m.blogSnap.Posts)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.postRow < len(page)-1 {
			m.postRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.postRow > 0 {
			m.postRow--
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.postPager.Next() {
			m.postRow = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.postPager.Prev() {
			m.postRow = 0
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadPostsCmd()
	case key.Matches(msg, m.keys.Open):
		if m.postRow < len(page) {
			id := page[m.postRow].ID
			m.openPostID = id
			m.currentView = ViewPost
			m.detailViewport.GotoTop()
			m.updateDetailViewport()
			return m, m.openPostCmd(id)
		}
	}
	return m, nil
}

// handlePostKey processes keyboard input for the post detail view.
func (m Model) handlePostKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.AddComment):
		if m.postReady() {
			user, ok := m.session.CurrentUser()
			m.form = commentForm(user, ok)
			m.formErr = ""
			m.currentView = ViewAddComment
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.openPostCmd(m.openPostID)
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// postReady reports whether the selected post is the one the user opened.
func (m Model) postReady() bool {
	post := m.blogSnap.SelectedPost
	return post != nil && post.ID == m.openPostID
}

// renderPosts renders the current page of posts.
func (m Model) renderPosts() string {
	styles := m.theme.Styles()
	posts := m.blogSnap.Posts

	var b strings.Builder
	b.WriteString(m.renderListTitle("Posts", m.postPager))
	b.WriteString("\n")

	if m.blogSnap.Error != "" {
		b.WriteString(styles.DangerText.Render(m.blogSnap.Error))
		b.WriteString("\n")
	}

	if len(posts) == 0 {
		if m.blogSnap.IsLoading {
			b.WriteString(styles.WarningText.Render("Loading posts..."))
		} else {
			b.WriteString(styles.MutedText.Render("No posts. Press r to reload."))
		}
		return b.String()
	}

	width := max(m.width-4, 20)
	for i, post := range pagination.Page(m.postPager, posts) {
		title := padRight(truncate(fmt.Sprintf("%3d  %s", post.ID, post.Title), width), width)
		if i == m.postRow {
			b.WriteString(styles.Selected.Render("▸ " + title))
		} else {
			b.WriteString(styles.Text.Render("  " + title))
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("       " + truncate(firstLine(post.Body), width-5)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPagerLine(m.postPager))
	return b.String()
}

// updateDetailViewport sizes the viewport and refills it from the snapshot.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = m.width
	// Header and command bar take two lines
	m.detailViewport.Height = max(m.height-2, 1)
	m.detailViewport.SetContent(m.renderPostDetail())
}

// renderPostDetail renders the selected post followed by its merged comments.
func (m Model) renderPostDetail() string {
	styles := m.theme.Styles()
	width := max(m.width-2, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	if m.blogSnap.Error != "" {
		b.WriteString(styles.DangerText.Render(m.blogSnap.Error))
		b.WriteString("\n\n")
	}

	if !m.postReady() {
		if m.blogSnap.IsLoading {
			b.WriteString(styles.WarningText.Render("Loading post..."))
		} else {
			b.WriteString(styles.MutedText.Render("Post unavailable. Press r to retry or esc to go back."))
		}
		return b.String()
	}

	post := m.blogSnap.SelectedPost
	b.WriteString(wrap.Inherit(styles.AccentText).Bold(true).Render(post.Title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("Post %d by user %d", post.ID, post.UserID)))
	b.WriteString("\n\n")
	b.WriteString(wrap.Inherit(styles.Text).Render(post.Body))
	b.WriteString("\n\n")

	comments := m.blogSnap.AllCommentsForPost()
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Comments (%d)", len(comments))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", min(width, 40))))
	b.WriteString("\n")

	if len(comments) == 0 {
		if m.blogSnap.IsLoading {
			b.WriteString(styles.WarningText.Render("Loading comments..."))
		} else {
			b.WriteString(styles.MutedText.Render("No comments yet. Press c to add one."))
		}
		return b.String()
	}

	for _, c := range comments {
		b.WriteString(renderComment(styles, c, wrap))
		b.WriteString("\n")
	}
	return b.String()
}

func renderComment(styles Styles, c placeholder.Comment, wrap lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Render(c.Name))
	if c.IsUserAdded {
		b.WriteString(" ")
		b.WriteString(styles.Badge.Render("You"))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(c.Email))
	b.WriteString("\n")
	b.WriteString(wrap.Inherit(styles.Text).Render(c.Body))
	b.WriteString("\n")
	return b.String()
}

// renderListTitle renders a list heading with the page position.
func (m Model) renderListTitle(title string, p pagination.Pager) string {
	styles := m.theme.Styles()
	out := styles.Text.Bold(true).Render(title)
	if n := p.TotalPages(); n > 0 {
		out += styles.MutedText.Render(fmt.Sprintf("  page %d of %d · %d items", p.Current(), n, p.Total))
	}
	return out
}

// renderPagerLine renders previous/next hints around the page strip.
func (m Model) renderPagerLine(p pagination.Pager) string {
	styles := m.theme.Styles()
	if p.TotalPages() <= 1 {
		return ""
	}
	prev := ternary(p.CanPrev(), "‹ h", "   ")
	next := ternary(p.CanNext(), "l ›", "   ")
	return styles.MutedText.Render(prev) + "  " +
		styles.AccentText.Render(pageStrip(p)) + "  " +
		styles.MutedText.Render(next)
}
