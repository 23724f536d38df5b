package sitemap

import (
	"errors"
	"testing"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://expatsargentina.com", "https://expatsargentina.com"},
		{"https://expatsargentina.com/", "https://expatsargentina.com"},
		{"HTTPS://ExpatsArgentina.com/es/?q=1", "https://expatsargentina.com/es"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://bücher.example/", "https://xn--bcher-kva.example"},
	}
	for _, tc := range cases {
		got, err := NormalizeBaseURL(tc.in)
		if err != nil {
			t.Fatalf("NormalizeBaseURL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeBaseURLRejects(t *testing.T) {
	for _, in := range []string{"ftp://example.com", "/relative/path", "https://"} {
		if _, err := NormalizeBaseURL(in); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("NormalizeBaseURL(%q) error = %v, want ErrInvalidBaseURL", in, err)
		}
	}
}
