// Package source loads text for layout.
//
// It decodes the raw bytes (UTF-8, UTF-16 or a legacy Chinese code page),
// normalizes line endings, optionally strips Markdown markup, and applies
// the whitespace cleanup the layout expects. The result is always a plain
// Go string ready for layout.Paginator.
package source
