package sitemap

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidBaseURL is returned when a base URL cannot prefix sitemap entries.
var ErrInvalidBaseURL = errors.New("sitemap: invalid base url")

// NormalizeBaseURL validates raw as an absolute http(s) origin (optionally with a
// path prefix) and returns it with an ASCII host and without a trailing slash.
// An empty input is accepted and yields site-relative URLs.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: host %q: %v", ErrInvalidBaseURL, host, err)
	}
	if port := u.Port(); port != "" {
		ascii = net.JoinHostPort(ascii, port)
	}
	out := url.URL{
		Scheme: scheme,
		Host:   ascii,
		Path:   strings.TrimRight(u.Path, "/"),
	}
	return out.String(), nil
}
