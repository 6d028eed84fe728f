package dashboard

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatRelative renders how long ago ts was, relative to now.
func FormatRelative(ts, now time.Time) string {
	d := now.Sub(ts)
	if d < 0 {
		return "in the future"
	}

	seconds := int64(d.Seconds())
	minutes := int64(d.Minutes())
	hours := int64(d.Hours())
	days := hours / 24
	weeks := days / 7
	months := days / 30
	years := days / 365

	switch {
	case seconds <= 1:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case minutes == 1:
		return "1 min ago"
	case minutes < 60:
		return fmt.Sprintf("%d mins ago", minutes)
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case weeks == 1:
		return "1 week ago"
	case weeks < 4:
		return fmt.Sprintf("%d weeks ago", weeks)
	case months == 1:
		return "1 month ago"
	case months < 12:
		return fmt.Sprintf("%d months ago", months)
	case years == 1:
		return "1 year ago"
	default:
		return fmt.Sprintf("%d years ago", years)
	}
}

// FormatCount compacts large numbers with K/M/B suffixes.
func FormatCount(count uint64) string {
	switch {
	case count >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(count)/1_000_000_000)
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK", float64(count)/1_000)
	default:
		return fmt.Sprintf("%d", count)
	}
}

// FormatBytes renders a byte count in binary units ("1.0 GiB").
func FormatBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// Truncate shortens s to at most maxLen runes, appending "..." when it
// actually cuts.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
