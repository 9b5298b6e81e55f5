package models

import (
	"regexp"
	"strings"
)

// Tag represents a post tag
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// TagSlug derives the slug the backend assigns to a tag name
func TagSlug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}
