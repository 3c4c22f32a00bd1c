package utils

import "strings"

// Slugify derives a URL-safe base slug from an organization name: lowercase,
// trimmed, runs of whitespace collapsed to single hyphens, and everything
// outside [a-z0-9-] stripped. Names differing only by casing or surrounding
// whitespace map to the same slug.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))

	inSpace := false
	for _, r := range lowered {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
			inSpace = false
		default:
			// stripped
			inSpace = false
		}
	}

	return b.String()
}
