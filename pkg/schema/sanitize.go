package schema

import "github.com/microcosm-cc/bluemonday"

// titles and descriptions come from schema authors and can end up rendered in
// documentation surfaces, so markup is stripped before emission.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	if s == "" {
		return ""
	}
	return textPolicy.Sanitize(s)
}
