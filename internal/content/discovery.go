package content

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// PostExt is the extension the loader resolves slugs against.
const PostExt = ".mdx"

var markdownExts = []string{".md", ".mdx"}

// IsMarkdown reports whether name ends in .md or .mdx.
func IsMarkdown(name string) bool {
	ext := filepath.Ext(name)
	for _, candidate := range markdownExts {
		if ext == candidate {
			return true
		}
	}
	return false
}

// StripExt removes a trailing .md or .mdx.
func StripExt(slug string) string {
	if IsMarkdown(slug) {
		return strings.TrimSuffix(slug, filepath.Ext(slug))
	}
	return slug
}

// DiscoverSlugs walks root to any depth and returns the slash-separated
// paths, relative to root, of every markdown file. Extensions are kept.
// A missing or unreadable root is returned as an error. Symlinked
// directories are not descended into (filepath.WalkDir does not follow
// them), so link cycles cannot loop; symlinked files are listed.
func DiscoverSlugs(root string) ([]string, error) {
	var slugs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slugs = append(slugs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, walkError(err, root)
	}
	return slugs, nil
}

// StaticParams returns every discovered slug, extension stripped, split
// into its path segments.
func StaticParams(root string) ([][]string, error) {
	slugs, err := DiscoverSlugs(root)
	if err != nil {
		return nil, err
	}
	params := make([][]string, 0, len(slugs))
	for _, slug := range slugs {
		params = append(params, strings.Split(StripExt(slug), "/"))
	}
	return params, nil
}
