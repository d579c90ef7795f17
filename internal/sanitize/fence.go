// Package sanitize cleans up text returned by LLM providers.
package sanitize

import "strings"

const fenceMarker = "```"

// StripFence removes a surrounding markdown code fence. When the trimmed text
// starts with a fence marker, its first and last lines are dropped and the
// remaining lines are returned untouched. Any other text is returned as is.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return s
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
