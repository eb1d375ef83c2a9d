// Package site renders posts into HTML pages and writes the static site.
package site

import (
	"fmt"
	"html/template"
	"io"

	"develog/internal/content"
)

const (
	listDateLayout = "2006.01.02"
	postDateLayout = "2006년 01월 02일"

	// NotFoundTitle titles the page served for unknown slugs.
	NotFoundTitle = "Post Not Found"
)

// Info is the site-wide data every page sees.
type Info struct {
	Title       string
	Description string
	Heading     string
	Author      string
	Lang        string
	BaseURL     string
	// Stylesheet is linked from every page when set, e.g. "/chroma.css".
	Stylesheet string
	// KaTeX locates the assets that typeset math on page load. Blank
	// fields take DefaultKaTeX.
	KaTeX KaTeXAssets
}

// KaTeXAssets are the KaTeX stylesheet, library and auto-render script URLs.
type KaTeXAssets struct {
	Stylesheet string
	Script     string
	AutoRender string
}

const katexCDN = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/"

// DefaultKaTeX points at a pinned KaTeX release on jsDelivr.
var DefaultKaTeX = KaTeXAssets{
	Stylesheet: katexCDN + "katex.min.css",
	Script:     katexCDN + "katex.min.js",
	AutoRender: katexCDN + "contrib/auto-render.min.js",
}

// Meta is the head metadata of one page.
type Meta struct {
	Title         string
	Description   string
	Article       bool
	PublishedTime string
}

// PostMeta describes a post page. A nil post yields the not-found title.
func PostMeta(post *content.Post) Meta {
	if post == nil {
		return Meta{Title: NotFoundTitle}
	}
	return Meta{
		Title:         post.Title,
		Description:   post.Description,
		Article:       true,
		PublishedTime: post.Date,
	}
}

type pageData struct {
	Site  Info
	Meta  Meta
	Tree  []*content.TreeNode
	Posts []*content.Post
	Post  *content.Post
}

// Renderer executes the page templates.
type Renderer struct {
	info     Info
	home     *template.Template
	post     *template.Template
	notFound *template.Template
}

// NewRenderer parses the page templates.
func NewRenderer(info Info) (*Renderer, error) {
	if info.Lang == "" {
		info.Lang = "ko"
	}
	if info.Heading == "" {
		info.Heading = "최신 포스트"
	}
	if info.Author == "" {
		info.Author = info.Title
	}
	if info.KaTeX.Stylesheet == "" {
		info.KaTeX.Stylesheet = DefaultKaTeX.Stylesheet
	}
	if info.KaTeX.Script == "" {
		info.KaTeX.Script = DefaultKaTeX.Script
	}
	if info.KaTeX.AutoRender == "" {
		info.KaTeX.AutoRender = DefaultKaTeX.AutoRender
	}

	base, err := template.New("site").Funcs(template.FuncMap{
		"listDate": func(p *content.Post) string { return formatDate(p, listDateLayout) },
		"postDate": func(p *content.Post) string { return formatDate(p, postDateLayout) },
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{info: info}
	pages := []struct {
		dst  **template.Template
		name string
		src  string
	}{
		{&r.home, "home", homeTemplate},
		{&r.post, "post", postTemplate},
		{&r.notFound, "not-found", notFoundTemplate},
	}
	for _, page := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if *page.dst, err = clone.Parse(page.src); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page.name, err)
		}
	}
	return r, nil
}

// Info returns the site data the renderer was built with.
func (r *Renderer) Info() Info {
	return r.info
}

// Home renders the latest-posts list.
func (r *Renderer) Home(w io.Writer, posts []*content.Post, tree []*content.TreeNode) error {
	return r.home.ExecuteTemplate(w, "layout", pageData{
		Site:  r.info,
		Meta:  Meta{Title: r.info.Title, Description: r.info.Description},
		Tree:  tree,
		Posts: posts,
	})
}

// Post renders one post; a nil post renders the not-found page.
func (r *Renderer) Post(w io.Writer, post *content.Post, tree []*content.TreeNode) error {
	if post == nil {
		return r.NotFound(w, tree)
	}
	return r.post.ExecuteTemplate(w, "layout", pageData{
		Site: r.info,
		Meta: PostMeta(post),
		Tree: tree,
		Post: post,
	})
}

// NotFound renders the missing-post page.
func (r *Renderer) NotFound(w io.Writer, tree []*content.TreeNode) error {
	return r.notFound.ExecuteTemplate(w, "layout", pageData{
		Site: r.info,
		Meta: PostMeta(nil),
		Tree: tree,
	})
}

// formatDate falls back to the raw front matter value when it did not parse.
func formatDate(post *content.Post, layout string) string {
	if post == nil {
		return ""
	}
	if post.HasDate() {
		return post.PublishedAt.Format(layout)
	}
	return post.Date
}
