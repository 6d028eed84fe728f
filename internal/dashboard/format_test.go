package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"now", now, "just now"},
		{"seconds", now.Add(-30 * time.Second), "30s ago"},
		{"one minute", now.Add(-1 * time.Minute), "1 min ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 mins ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"hours", now.Add(-2 * time.Hour), "2 hours ago"},
		{"yesterday", now.Add(-24 * time.Hour), "yesterday"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"one week", now.Add(-8 * 24 * time.Hour), "1 week ago"},
		{"weeks", now.Add(-15 * 24 * time.Hour), "2 weeks ago"},
		{"months", now.Add(-65 * 24 * time.Hour), "2 months ago"},
		{"one year", now.Add(-400 * 24 * time.Hour), "1 year ago"},
		{"years", now.Add(-800 * 24 * time.Hour), "2 years ago"},
		{"future", now.Add(time.Hour), "in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(tt.ts, now))
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{1000000, "1.0M"},
		{1500000000, "1.5B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello...", Truncate("hello world", 8))
	assert.Equal(t, "hi", Truncate("hi", 2))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
}
