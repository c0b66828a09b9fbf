package ui

import (
	"strconv"
	"strings"

	"github.com/five82/folio/internal/pagination"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// firstLine collapses a multi-line API body to its first line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// pageStrip renders the page list with the current page bracketed, e.g.
// "1 … 4 [5] 6 … 10".
func pageStrip(p pagination.Pager) string {
	pages := pagination.Pages(p.Total, p.PerPage, p.Current())
	parts := make([]string, 0, len(pages))
	for _, n := range pages {
		switch {
		case n == pagination.Ellipsis:
			parts = append(parts, "…")
		case n == p.Current():
			parts = append(parts, "["+strconv.Itoa(n)+"]")
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " ")
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
