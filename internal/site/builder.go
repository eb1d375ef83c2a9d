package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"develog/internal/content"
	"develog/internal/logging"
	"develog/internal/metrics"
)

// StylesheetPath is where the chroma stylesheet is written and linked from.
const StylesheetPath = "/chroma.css"

// PostSource supplies the sorted post collection.
type PostSource interface {
	AllPosts(ctx context.Context) ([]*content.Post, error)
}

// rootedSource is a PostSource that reads from a directory on disk.
type rootedSource interface {
	Root() string
}

// Stylesheet exports highlight CSS when code is rendered with classes.
type Stylesheet interface {
	CSSClasses() bool
	WriteCSS(w io.Writer) error
}

// Snapshot is one consistent read of the content root.
type Snapshot struct {
	Posts []*content.Post
	Tree  []*content.TreeNode
}

// Load reads every post and builds the category tree. Title collisions
// are logged.
func Load(ctx context.Context, source PostSource, logger logging.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	posts, err := source.AllPosts(ctx)
	if err != nil {
		return nil, err
	}
	tree, collisions := content.BuildCategoryTreeWithReport(posts)
	for _, c := range collisions {
		logger.Warn("post title collides within category, later post wins",
			"category", c.Category, "title", c.Title, "replaced", c.Replaced, logging.FieldSlug, c.By)
	}
	return &Snapshot{Posts: posts, Tree: tree}, nil
}

// Builder writes the static site.
type Builder struct {
	source   PostSource
	renderer *Renderer
	css      Stylesheet
	logger   logging.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

func WithBuilderLogger(logger logging.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithBuilderRecorder(recorder metrics.Recorder) BuilderOption {
	return func(b *Builder) {
		if recorder != nil {
			b.recorder = recorder
		}
	}
}

// WithStylesheet writes chroma.css when css is in class mode.
func WithStylesheet(css Stylesheet) BuilderOption {
	return func(b *Builder) {
		b.css = css
	}
}

func NewBuilder(source PostSource, renderer *Renderer, opts ...BuilderOption) *Builder {
	b := &Builder{
		source:   source,
		renderer: renderer,
		logger:   logging.NoOp(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Report summarises a finished build.
type Report struct {
	Posts    int
	Files    int
	Duration time.Duration
}

// Build regenerates outDir from scratch: index.html, one
// posts/<slug>/index.html per post, 404.html, sitemap.xml, tree.json,
// posts.json and, in class mode, chroma.css.
func (b *Builder) Build(ctx context.Context, outDir string) (report Report, err error) {
	start := time.Now()
	defer func() {
		report.Duration = time.Since(start)
		b.recorder.ObserveBuild(report.Duration, err == nil)
	}()

	contentRoot := ""
	if rooted, ok := b.source.(rootedSource); ok {
		contentRoot = rooted.Root()
	}
	if err := guardOutDir(outDir, contentRoot); err != nil {
		return report, err
	}

	snap, err := Load(ctx, b.source, b.logger)
	if err != nil {
		return report, err
	}

	if err := os.RemoveAll(outDir); err != nil {
		return report, fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return report, fmt.Errorf("create output dir: %w", err)
	}

	files, err := b.render(snap)
	if err != nil {
		return report, err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	for rel, data := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeFile(filepath.Join(outDir, filepath.FromSlash(rel)), data)
		})
	}
	if err := group.Wait(); err != nil {
		return report, err
	}

	report.Posts = len(snap.Posts)
	report.Files = len(files)
	b.logger.Info("site built", "out", outDir, "posts", report.Posts, "files", report.Files)
	return report, nil
}

// render produces every output file in memory, keyed by slash path.
func (b *Builder) render(snap *Snapshot) (map[string][]byte, error) {
	files := map[string][]byte{}

	var buf bytes.Buffer
	if err := b.renderer.Home(&buf, snap.Posts, snap.Tree); err != nil {
		return nil, fmt.Errorf("render home: %w", err)
	}
	files["index.html"] = bytes.Clone(buf.Bytes())

	for _, post := range snap.Posts {
		buf.Reset()
		if err := b.renderer.Post(&buf, post, snap.Tree); err != nil {
			return nil, fmt.Errorf("render post %s: %w", post.Slug, err)
		}
		files["posts/"+post.Slug+"/index.html"] = bytes.Clone(buf.Bytes())
	}

	buf.Reset()
	if err := b.renderer.NotFound(&buf, snap.Tree); err != nil {
		return nil, fmt.Errorf("render 404: %w", err)
	}
	files["404.html"] = bytes.Clone(buf.Bytes())

	files["sitemap.xml"] = Sitemap(b.renderer.Info().BaseURL, snap.Posts, b.now())

	tree, err := json.MarshalIndent(snap.Tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	files["tree.json"] = tree

	posts, err := json.MarshalIndent(snap.Posts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode posts: %w", err)
	}
	files["posts.json"] = posts

	if b.css != nil && b.css.CSSClasses() {
		buf.Reset()
		if err := b.css.WriteCSS(&buf); err != nil {
			return nil, fmt.Errorf("write chroma css: %w", err)
		}
		files[StylesheetPath[1:]] = bytes.Clone(buf.Bytes())
	}
	return files, nil
}

// guardOutDir rejects output dirs that Build's RemoveAll must never touch.
// An output dir may not be the filesystem root or hold the working
// directory or the content root.
func guardOutDir(outDir, contentRoot string) error {
	clean := filepath.Clean(outDir)
	if outDir == "" || clean == "." || clean == string(filepath.Separator) {
		return fmt.Errorf("refusing to use %q as output dir", outDir)
	}
	abs, err := filepath.Abs(clean)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	if cwd, err := os.Getwd(); err == nil && within(cwd, abs) {
		return fmt.Errorf("refusing to use %q as output dir: it contains the working directory", outDir)
	}
	if contentRoot != "" {
		root, err := filepath.Abs(contentRoot)
		if err != nil {
			return fmt.Errorf("resolve content root: %w", err)
		}
		if within(root, abs) {
			return fmt.Errorf("refusing to use %q as output dir: it contains the content root %s", outDir, contentRoot)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
