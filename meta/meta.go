// Package meta holds the pure helpers that derive post metadata: URL slugs
// and estimated reading time.
package meta

import (
	"regexp"
	"strings"
)

// wordsPerMinute is the assumed reading speed for EstimateReadingTime.
const wordsPerMinute = 200

var (
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// GenerateSlug derives a URL-safe slug from a post title: lowercased, each
// run of non-alphanumeric characters collapsed to a single hyphen, leading
// and trailing hyphens trimmed.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlnumRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// TagSlug derives a tag's slug from its name: lowercased, whitespace runs
// collapsed to single hyphens, everything outside [a-z0-9-] stripped.
func TagSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}

// EstimateReadingTime returns the estimated minutes needed to read content,
// word count at 200 wpm rounded up, never below 1 for non-empty content.
func EstimateReadingTime(content string) int {
	if content == "" {
		return 0
	}
	minutes := (len(strings.Fields(content)) + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
