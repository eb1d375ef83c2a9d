package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"develog/internal/content"
	"develog/internal/logging"
	"develog/internal/site"
)

// Response is the JSON envelope for API errors.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Home(buf, snap.Posts, snap.Tree)
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")
	post, err := s.posts.PostBySlug(r.Context(), slug)
	if err != nil && !isMissing(err) {
		s.serverError(w, err, slug)
		return
	}
	if err != nil {
		logging.WithPost(s.logger, slug, "").Debug("post not served", logging.FieldError, err)
	}

	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	if post == nil {
		s.writePage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
			return s.renderer.NotFound(buf, snap.Tree)
		})
		return
	}
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Post(buf, post, snap.Tree)
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	s.writePage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return s.renderer.NotFound(buf, snap.Tree)
	})
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(site.Sitemap(s.renderer.Info().BaseURL, snap.Posts, time.Now()))
}

func (s *Server) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.css.WriteCSS(&buf); err != nil {
		s.serverError(w, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.AllPosts(r.Context())
	if err != nil {
		s.apiError(w, err)
		return
	}
	if posts == nil {
		posts = []*content.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.posts.PostBySlug(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	snap, err := site.Load(r.Context(), s.posts, s.logger)
	if err != nil {
		s.apiError(w, err)
		return
	}
	tree := snap.Tree
	if tree == nil {
		tree = []*content.TreeNode{}
	}
	writeJSON(w, http.StatusOK, tree)
}

// snapshot loads posts and tree for a page, writing a 500 on failure.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*site.Snapshot, bool) {
	snap, err := site.Load(r.Context(), s.posts, s.logger)
	if err != nil {
		s.serverError(w, err, "")
		return nil, false
	}
	return snap, true
}

// writePage renders into a buffer first so a template failure still yields
// a clean 500.
func (s *Server) writePage(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.serverError(w, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serverError(w http.ResponseWriter, err error, slug string) {
	logging.WithPost(s.logger, slug, "").Error("request failed", logging.FieldError, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) apiError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("api request failed", logging.FieldError, err)
	}
	writeJSON(w, status, Response{Success: false, Error: err.Error()})
}

// isMissing covers the load failures a reader sees as "no such post".
func isMissing(err error) bool {
	return content.IsNotFound(err) || content.IsMalformed(err)
}

func statusFor(err error) int {
	if isMissing(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
