package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteXML(t *testing.T) {
	t.Parallel()

	local := time.FixedZone("ART", -3*60*60)
	entries := []Entry{
		{URL: "https://expatsargentina.com/", LastModified: time.Date(2026, 1, 20, 6, 30, 0, 0, local), ChangeFrequency: Weekly, Priority: 1},
		{URL: "https://expatsargentina.com/visas/compare/a&b/", ChangeFrequency: Monthly, Priority: 0.75},
	}

	var sb strings.Builder
	require.NoError(t, WriteXML(&sb, entries))
	out := sb.String()
	require.True(t, strings.HasPrefix(out, xml.Header))
	require.Contains(t, out, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	require.Contains(t, out, "a&amp;b")

	var doc urlset
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.URLs, 2)
	require.Equal(t, "https://expatsargentina.com/", doc.URLs[0].Loc)
	require.Equal(t, "2026-01-20T09:30:00Z", doc.URLs[0].LastMod)
	require.Equal(t, "weekly", doc.URLs[0].ChangeFreq)
	require.Equal(t, "1.0", doc.URLs[0].Priority)
	require.Empty(t, doc.URLs[1].LastMod)
	require.Equal(t, "0.8", doc.URLs[1].Priority)
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()

	b, err := Encode(nil)
	require.NoError(t, err)

	var doc urlset
	require.NoError(t, xml.Unmarshal(b, &doc))
	require.Empty(t, doc.URLs)
}
