package content

import (
	"sort"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate tries the supported layouts in order. ok is false when none
// match.
func ParseDate(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// SortByDateDesc orders posts newest first. Posts without a parseable date
// go last; equal keys keep their input order.
func SortByDateDesc(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.HasDate() && b.HasDate():
			return a.PublishedAt.After(b.PublishedAt)
		case a.HasDate():
			return true
		default:
			return false
		}
	})
}
