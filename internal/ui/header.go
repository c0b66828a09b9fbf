package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// viewTitles names each view in the header.
var viewTitles = map[View]string{
	ViewLogin:      "Log in",
	ViewSignup:     "Sign up",
	ViewPosts:      "Blog",
	ViewPost:       "Post",
	ViewAddComment: "Add comment",
	ViewAlbums:     "Albums",
	ViewPhotos:     "Photos",
}

// renderHeader renders the status bar: logo, view, load state and user.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("folio", styles.Logo),
		bg.Render(viewTitles[m.currentView], styles.Text.Bold(true)),
	}

	loading, errMsg := m.activeStatus()
	switch {
	case loading:
		parts = append(parts, bg.Render("● Loading", styles.WarningText.Bold(true)))
	case errMsg != "":
		parts = append(parts, bg.Render("● "+truncate(errMsg, 40), styles.DangerText))
	}

	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.SuccessText))
	}

	left := bg.Join(parts, "  ")

	right := ""
	if user, ok := m.session.CurrentUser(); ok {
		right = bg.Render(user.Username, styles.MutedText) + bg.Space() +
			styles.Badge.Render(m.session.Initials())
	}

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return styles.Header.Width(m.width).Render(left + sep + right)
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// activeStatus returns the loading flag and error of the store behind the
// current view.
func (m Model) activeStatus() (loading bool, errMsg string) {
	switch m.currentView {
	case ViewAlbums, ViewPhotos:
		return m.photoSnap.IsLoading, m.photoSnap.Error
	case ViewPosts, ViewPost:
		return m.blogSnap.IsLoading, m.blogSnap.Error
	}
	return false, ""
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewPost:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"c", "Comment"},
			{"r", "Reload"},
			{"esc", "Posts"},
			{"a", "Albums"},
		}
	case ViewAlbums:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"h/l", "Page"},
			{"enter", "Open"},
			{"r", "Reload"},
			{"b", "Blog"},
		}
	case ViewPhotos:
		commands = []cmd{
			{"h/l", "Page"},
			{"r", "Reload"},
			{"esc", "Albums"},
			{"b", "Blog"},
		}
	default: // ViewPosts
		commands = []cmd{
			{"j/k", "Navigate"},
			{"h/l", "Page"},
			{"enter", "Open"},
			{"r", "Reload"},
			{"a", "Albums"},
		}
	}
	commands = append(commands, cmd{"L", "Log out"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
