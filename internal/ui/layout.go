package ui

import "time"

// Layout sizes.
const (
	// chromeRows is the header line plus the command bar.
	chromeRows = 2

	// inputPanelWidth is the preferred width of the left form column.
	inputPanelWidth = 44

	// minResultWidth is the narrowest result column before the form shrinks.
	minResultWidth = 30

	// minPanelHeight is the smallest box that still shows one result row.
	minPanelHeight = 4

	// Display limits for paths and URLs in the chrome.
	maxStatusPath = 40
	maxHeaderURL  = 32
)

// Timing constants.
const (
	// defaultRequestTimeout bounds a single user-initiated API call when
	// no timeout is configured.
	defaultRequestTimeout = 30 * time.Second

	// DefaultUIInterval is the default store refresh interval.
	DefaultUIInterval = time.Second

	// statusTTL is how long a status line message stays visible.
	statusTTL = 8 * time.Second
)

// columnWidths splits the terminal width into form and result columns.
func columnWidths(total int) (left, right int) {
	left = inputPanelWidth
	if total-left < minResultWidth {
		left = max(total-minResultWidth, total/3)
	}
	left = max(left, 0)
	return left, max(total-left, 0)
}

// stackHeights splits height among n stacked boxes, giving the remainder to
// the last one.
func stackHeights(height, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	each := height / n
	for i := range out {
		out[i] = each
	}
	out[n-1] += height - each*n
	return out
}
