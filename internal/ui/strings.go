package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given display width, adding an
// ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return ansi.Truncate(value, limit, "…")
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end. For paths it keeps the file name.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}

	const ellipsis = "…"
	if i := strings.LastIndexAny(value, `/\`); i >= 0 {
		name := value[i:]
		if w := ansi.StringWidth(name); w < limit/2 {
			head := ansi.Truncate(value[:i], limit-w-1, "")
			return head + ellipsis + name
		}
	}

	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return ansi.Truncate(value, prefix, "") + ellipsis + ansi.TruncateLeft(value, ansi.StringWidth(value)-suffix, "")
}
