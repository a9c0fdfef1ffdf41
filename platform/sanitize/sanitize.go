// Package sanitize cleans free text that crosses a trust boundary, such as
// catalog copy from the remote API and shopper-entered form fields.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup, decodes entities and strips again so encoded
// tags like "&lt;script&gt;" do not survive the decode.
func StripHTML(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = html.UnescapeString(out)
	return tagPattern.ReplaceAllString(out, "")
}

// Text strips markup and collapses runs of whitespace to single spaces.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// Fields applies Text to every pointer in place. Nil pointers are skipped.
func Fields(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = Text(*f)
		}
	}
}
