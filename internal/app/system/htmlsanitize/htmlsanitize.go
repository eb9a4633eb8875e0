// Package htmlsanitize strips markup from user-supplied free-text
// fields before they are persisted. The signup form fields (name,
// country, profession, source) are reflected back to browsers by the
// landing page, so anything resembling HTML is removed outright.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy removes all HTML elements and attributes, keeping text content.
var policy = bluemonday.StrictPolicy()

// Strip removes any HTML from s and trims surrounding whitespace.
func Strip(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
