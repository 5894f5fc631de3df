// Package render converts stored Markdown content to sanitized HTML for
// public display.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips dangerous elements (<script>, event handlers, ...)
// from rendered HTML while keeping safe formatting tags.
var htmlSanitizer = bluemonday.UGCPolicy()

// textSanitizer strips all markup. Used for free-text fields submitted
// through public forms.
var textSanitizer = bluemonday.StrictPolicy()

// MarkdownToHTML converts Markdown source to sanitized HTML.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// StripTags removes all HTML markup from a public form submission.
func StripTags(s string) string {
	return textSanitizer.Sanitize(s)
}
