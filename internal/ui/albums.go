package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/folio/internal/pagination"
)

// handleAlbumsKey processes keyboard input for the albums list.
func (m Model) handleAlbumsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := pagination.Page(m.albumPager, m.photoSnap.Albums)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.albumRow < len(page)-1 {
			m.albumRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.albumRow > 0 {
			m.albumRow--
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.albumPager.Next() {
			m.albumRow = 0
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.albumPager.Prev() {
			m.albumRow = 0
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadAlbumsCmd()
	case key.Matches(msg, m.keys.Open):
		if m.albumRow < len(page) {
			id := page[m.albumRow].ID
			m.openAlbumID = id
			m.photoPager = pagination.NewPager(0, m.perPage)
			m.currentView = ViewPhotos
			return m, m.openAlbumCmd(id)
		}
	}
	return m, nil
}

// handlePhotosKey processes keyboard input for an album's photos.
func (m Model) handlePhotosKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Down):
		m.photoPager.Next()
	case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Up):
		m.photoPager.Prev()
	case key.Matches(msg, m.keys.Reload):
		return m, m.openAlbumCmd(m.openAlbumID)
	}
	return m, nil
}

// renderAlbums renders the current page of albums.
func (m Model) renderAlbums() string {
	styles := m.theme.Styles()
	albums := m.photoSnap.Albums

	var b strings.Builder
	b.WriteString(m.renderListTitle("Albums", m.albumPager))
	b.WriteString("\n")

	if m.photoSnap.Error != "" {
		b.WriteString(styles.DangerText.Render(m.photoSnap.Error))
		b.WriteString("\n")
	}

	if len(albums) == 0 {
		if m.photoSnap.IsLoading {
			b.WriteString(styles.WarningText.Render("Loading albums..."))
		} else {
			b.WriteString(styles.MutedText.Render("No albums. Press r to reload."))
		}
		return b.String()
	}

	width := max(m.width-4, 20)
	for i, album := range pagination.Page(m.albumPager, albums) {
		line := padRight(truncate(fmt.Sprintf("%3d  %s", album.ID, album.Title), width), width)
		if i == m.albumRow {
			b.WriteString(styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPagerLine(m.albumPager))
	return b.String()
}

// renderPhotos renders the open album and the current page of its photos.
func (m Model) renderPhotos() string {
	styles := m.theme.Styles()

	var b strings.Builder

	title := "Album"
	if album := m.photoSnap.SelectedAlbum; album != nil && album.ID == m.openAlbumID {
		title = album.Title
	}
	b.WriteString(m.renderListTitle(title, m.photoPager))
	b.WriteString("\n")

	if m.photoSnap.Error != "" {
		b.WriteString(styles.DangerText.Render(m.photoSnap.Error))
		b.WriteString("\n")
	}

	photos := m.photoSnap.Photos
	if len(photos) == 0 || photos[0].AlbumID != m.openAlbumID {
		if m.photoSnap.IsLoading {
			b.WriteString(styles.WarningText.Render("Loading photos..."))
		} else {
			b.WriteString(styles.MutedText.Render("No photos in this album."))
		}
		return b.String()
	}

	width := max(m.width-4, 20)
	for _, photo := range pagination.Page(m.photoPager, photos) {
		b.WriteString(styles.Text.Render(truncate(fmt.Sprintf("%5d  %s", photo.ID, photo.Title), width)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("       " + truncate(photo.URL, width-7)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("       " + truncate(photo.ThumbnailURL, width-7)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPagerLine(m.photoPager))
	return b.String()
}
