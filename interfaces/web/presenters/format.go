// Package presenters transforms domain data into UI-ready view models.
package presenters

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a timestamp the way the feed and report list
// show it: "just now", "5m ago", "3h ago", then a date.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
	return t.Format("Jan 2, 2006")
}

// FormatFileSize renders a byte count for the report table.
func FormatFileSize(size int64) string {
	switch {
	case size <= 0:
		return "-"
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}
