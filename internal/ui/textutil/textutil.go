// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import "github.com/mattn/go-runewidth"

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth visual columns, ending in an
// ellipsis when anything was cut. maxWidth <= 0 yields "".
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}

	available := maxWidth - VisualWidth(TruncateEllipsis)
	if available < 0 {
		return TruncateEllipsis
	}

	runes := []rune(s)
	result := make([]rune, 0, len(runes))
	width := 0
	for _, r := range runes {
		rw := runewidth.RuneWidth(r)
		if width+rw > available {
			break
		}
		result = append(result, r)
		width += rw
	}
	return string(result) + TruncateEllipsis
}

// PadRightVisual pads s with spaces to targetWidth visual columns.
// Wider strings are truncated.
func PadRightVisual(s string, targetWidth int) string {
	w := VisualWidth(s)
	if w >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-w)
}
