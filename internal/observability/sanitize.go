package observability

import (
	"strings"
	"unicode"
)

const (
	maxRouteLen  = 180
	maxMethodLen = 10
)

// clean removes control characters and keeps at most limit runes, so values
// taken from a request cannot split or forge log lines.
func clean(value string, limit int) string {
	var b strings.Builder
	n := 0
	for _, r := range value {
		if n == limit {
			break
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// SanitizeRoute prepares a route pattern or raw path for a log field.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return clean(route, maxRouteLen)
}

// SanitizeMethod prepares an HTTP method for a log field.
func SanitizeMethod(method string) string {
	return clean(method, maxMethodLen)
}
