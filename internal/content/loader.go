package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"develog/internal/logging"
	"develog/internal/metrics"
)

// Loader reads posts from a content root and renders their bodies.
type Loader struct {
	root     string
	renderer Renderer
	logger   logging.Logger
	recorder metrics.Recorder
}

// Option customises a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load failures.
func WithLogger(logger logging.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(l *Loader) {
		if recorder != nil {
			l.recorder = recorder
		}
	}
}

// NewLoader returns a loader for posts under root.
func NewLoader(root string, renderer Renderer, opts ...Option) *Loader {
	l := &Loader{
		root:     filepath.Clean(root),
		renderer: renderer,
		logger:   logging.NoOp(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root is the content directory.
func (l *Loader) Root() string {
	return l.root
}

// Slugs lists the discovered post files, extensions kept.
func (l *Loader) Slugs() ([]string, error) {
	return DiscoverSlugs(l.root)
}

// PostBySlug loads <root>/<slug>.mdx. A trailing .md/.mdx on slug is
// ignored. Errors satisfy exactly one of IsNotFound, IsMalformed or IsIO.
func (l *Loader) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	start := time.Now()
	post, err := l.load(ctx, slug)
	l.recorder.ObservePostLoad(loadResult(err), time.Since(start))
	return post, err
}

// GetPostBySlug is PostBySlug collapsed to "no post found": failures are
// logged and nil is returned.
func (l *Loader) GetPostBySlug(ctx context.Context, slug string) *Post {
	post, err := l.PostBySlug(ctx, slug)
	if err != nil {
		logging.WithPost(l.logger, slug, "").Error("error getting post", logging.FieldError, err)
		return nil
	}
	return post
}

func (l *Loader) load(ctx context.Context, slug string) (*Post, error) {
	realSlug := StripExt(slug)
	if err := ctx.Err(); err != nil {
		return nil, ioError(err, realSlug)
	}

	rel := filepath.FromSlash(realSlug) + PostExt
	if realSlug == "" || !filepath.IsLocal(rel) {
		return nil, notFoundError(fs.ErrNotExist, realSlug)
	}
	fullPath := filepath.Join(l.root, rel)

	source, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(err, realSlug)
		}
		return nil, ioError(err, realSlug)
	}

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, malformedError(err, realSlug)
	}

	html, err := l.renderer.Render(body)
	if err != nil {
		return nil, malformedError(err, realSlug)
	}

	title := fm.Title
	if title == "" {
		title = TitleFromSlug(realSlug)
	}
	publishedAt, _ := ParseDate(fm.Date)

	return &Post{
		Slug:        realSlug,
		Title:       title,
		Date:        fm.Date,
		Category:    fm.Category,
		Description: fm.Description,
		Tags:        fm.Tags,
		Author:      fm.Author,
		Content:     html,
		PublishedAt: publishedAt,
	}, nil
}

// AllPosts loads every discovered post concurrently, one goroutine per
// file, drops the ones that fail and sorts the rest newest first. Only a
// failed directory walk is returned as an error.
func (l *Loader) AllPosts(ctx context.Context) ([]*Post, error) {
	slugs, err := l.Slugs()
	if err != nil {
		return nil, err
	}

	loaded := make([]*Post, len(slugs))
	var group errgroup.Group
	for i, slug := range slugs {
		group.Go(func() error {
			loaded[i] = l.GetPostBySlug(ctx, StripExt(slug))
			return nil
		})
	}
	_ = group.Wait()

	posts := make([]*Post, 0, len(loaded))
	for _, post := range loaded {
		if post == nil {
			continue
		}
		if !post.HasDate() {
			logging.WithPost(l.logger, post.Slug, "").Warn("unparseable post date, sorting last", "date", post.Date)
		}
		posts = append(posts, post)
	}
	SortByDateDesc(posts)
	l.recorder.SetCollectionSize(len(posts))
	return posts, nil
}

func loadResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case IsNotFound(err):
		return metrics.ResultNotFound
	case IsMalformed(err):
		return metrics.ResultMalformed
	default:
		return metrics.ResultIO
	}
}
