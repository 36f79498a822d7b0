package utils

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
	"time"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanText collapses every run of whitespace (including non-breaking
// spaces) into a single space and trims the ends.
func CleanText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// StripTags removes markup from a raw HTML fragment and returns its
// cleaned, entity-decoded text.
func StripTags(fragment string) string {
	return CleanText(html.UnescapeString(tagPattern.ReplaceAllString(fragment, "")))
}

// TrimLabel strips the first matching label (case-insensitive) from the
// start of text.
func TrimLabel(text string, labels []string) string {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	for _, label := range labels {
		if label == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(label)) {
			return strings.TrimSpace(text[len(label):])
		}
	}
	return text
}

func HasLabel(text string, labels []string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, label := range labels {
		if label != "" && strings.HasPrefix(lower, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

func GrepString(baseString, searchString string) bool {
	return strings.Contains(
		strings.ToLower(baseString),
		strings.ToLower(searchString),
	)
}

func GrepAny(baseString string, searchStrings []string) bool {
	for _, s := range searchStrings {
		if s != "" && GrepString(baseString, s) {
			return true
		}
	}
	return false
}

// SortedIDs returns the keys of set in ascending order.
func SortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func FormatIDs(ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

func StartTime() time.Time {
	return time.Now()
}

func TimeSince(startTime time.Time) string {
	duration := time.Since(startTime)

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	if seconds == 0 {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}
	return fmt.Sprintf("%ds", seconds)
}
