package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTruncate(t *testing.T) {
	if got := truncate("  short  ", 10); got != "short" {
		t.Fatalf("truncate = %q, want %q", got, "short")
	}
	got := truncate("http://127.0.0.1:5000/very/long", 10)
	if w := ansi.StringWidth(got); w != 10 {
		t.Fatalf("truncate width = %d, want 10 (%q)", w, got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q, want ellipsis", got)
	}
}

func TestTruncateMiddleKeepsFileName(t *testing.T) {
	got := truncateMiddle("/home/user/datasets/2011/online_retail.csv", 40)
	if !strings.HasSuffix(got, "/online_retail.csv") {
		t.Fatalf("truncateMiddle = %q, want file name kept", got)
	}
	if w := ansi.StringWidth(got); w > 40 {
		t.Fatalf("truncateMiddle width = %d, want <= 40", w)
	}
	if got := truncateMiddle("data.csv", 30); got != "data.csv" {
		t.Fatalf("truncateMiddle short = %q", got)
	}
}
