package sitemap

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"time"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ContentType is the media type served for encoded sitemaps.
const ContentType = "application/xml; charset=utf-8"

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// WriteXML encodes entries as a sitemaps.org urlset, preserving order.
func WriteXML(w io.Writer, entries []Entry) error {
	doc := urlset{Xmlns: xmlns, URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		doc.URLs = append(doc.URLs, xmlURL{
			Loc:        e.URL,
			LastMod:    formatLastMod(e.LastModified),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Encode is WriteXML into a byte slice.
func Encode(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatLastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
