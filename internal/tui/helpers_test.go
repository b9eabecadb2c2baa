package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTime(tc.t); got != tc.want {
				t.Errorf("formatTime = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(time.Time{}); got != "N/A" {
		t.Errorf("formatDate(zero) = %q, want N/A", got)
	}
	d := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	if got := formatDate(d); got != "9 March 2024" {
		t.Errorf("formatDate = %q, want '9 March 2024'", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("truncStr should not change short strings, got %q", got)
	}
	got := truncStr("a very long club name here", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncStr length = %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	got := truncateToHeight(s, 2)
	if got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q, want %q", got, "a\nb\n")
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines<=0 should return input unchanged, got %q", got)
	}
	if got := truncateToHeight("one line", 5); got != "one line" {
		t.Errorf("short input should be unchanged, got %q", got)
	}
}

func TestMatchResult(t *testing.T) {
	tests := []struct {
		gf, ga int
		want   string
	}{
		{3, 1, "W"},
		{0, 2, "L"},
		{1, 1, "D"},
		{0, 0, "D"},
	}
	for _, tc := range tests {
		if got := matchResult(tc.gf, tc.ga); got != tc.want {
			t.Errorf("matchResult(%d, %d) = %q, want %q", tc.gf, tc.ga, got, tc.want)
		}
	}
}

func TestCenterLine(t *testing.T) {
	got := centerLine("ab", 10)
	if got != "    ab" {
		t.Errorf("centerLine = %q, want %q", got, "    ab")
	}
	// Wider content than the terminal gets no padding.
	if got := centerLine("abcdef", 4); got != "abcdef" {
		t.Errorf("centerLine overflow = %q, want unchanged", got)
	}
}

func TestStatusBadge(t *testing.T) {
	active := statusBadge("active", true)
	if !strings.Contains(active, "[active]") {
		t.Errorf("expected [active] badge, got %q", active)
	}
	expired := statusBadge("expired", false)
	if !strings.Contains(expired, "[expired]") {
		t.Errorf("expected [expired] badge, got %q", expired)
	}
}
