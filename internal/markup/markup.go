// Package markup removes HTML tags from free-text fields before display.
package markup

import "regexp"

// tagPattern matches an opening angle bracket, any run of characters other
// than '>', and the closing bracket.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags returns s with every tag removed. Entities are not decoded and an
// unterminated '<' is left in place.
func StripTags(s string) string {
	return tagPattern.ReplaceAllLiteralString(s, "")
}
