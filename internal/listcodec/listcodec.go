// Package listcodec converts between tag lists and the comma-delimited
// text students edit. Entries are trimmed and empties dropped on the
// way in, so Split(Join(list)) preserves the set (not the spacing).
package listcodec

import "strings"

// Split parses comma-delimited text into a list. Whitespace around
// entries is trimmed and empty entries are dropped. Never returns nil.
func Split(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Join renders a list back to editable text.
func Join(items []string) string {
	return strings.Join(items, ", ")
}
