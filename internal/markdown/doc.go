// Package markdown implements filesystem discovery, frontmatter parsing, and
// HTML rendering for convention documents.
package markdown
