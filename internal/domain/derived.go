package domain

import (
	"strings"

	"github.com/MrSnakeDoc/storefront/internal/store"
)

// wordsPerMinute is the assumed reading speed for read-time estimation.
const wordsPerMinute = 200

// ReadTime returns the estimated reading time in minutes for content,
// ceil(words/200) with a floor of one minute. Pure, no I/O; it must be
// recomputed on every content change, never cached against stale content.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// DerivedFields returns the derived field values implied by a replace-fields
// payload. Only fields whose inputs are present in the payload are returned.
func DerivedFields(c store.Collection, fields map[string]any) map[string]any {
	out := make(map[string]any)
	if c == store.Blogs {
		if content, ok := fields["content"].(string); ok {
			out["readTime"] = ReadTime(content)
		}
	}
	return out
}
