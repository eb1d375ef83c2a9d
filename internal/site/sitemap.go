package site

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"develog/internal/content"
)

// Sitemap returns a sitemaps.org urlset listing the home page and every
// post. Posts with a parsed date use it as lastmod; the rest use now.
func Sitemap(baseURL string, posts []*content.Post, now time.Time) []byte {
	baseURL = strings.TrimRight(baseURL, "/")
	today := now.Format("2006-01-02")

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeURL(&buf, baseURL+"/", today)
	for _, post := range posts {
		lastmod := today
		if post.HasDate() {
			lastmod = post.PublishedAt.Format("2006-01-02")
		}
		writeURL(&buf, baseURL+PostPath(post.Slug), lastmod)
	}
	buf.WriteString(`</urlset>`)
	return buf.Bytes()
}

func writeURL(buf *bytes.Buffer, loc, lastmod string) {
	buf.WriteString("  <url>\n")
	buf.WriteString("    <loc>")
	_ = xml.EscapeText(buf, []byte(loc))
	buf.WriteString("</loc>\n")
	buf.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", lastmod))
	buf.WriteString("    <changefreq>weekly</changefreq>\n")
	buf.WriteString("  </url>\n")
}

// PostPath is the URL path of a post, each slug segment escaped.
func PostPath(slug string) string {
	segments := strings.Split(slug, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/posts/" + strings.Join(segments, "/")
}
