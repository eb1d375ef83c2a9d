package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DefaultLanguages is the highlight set used when Config.Languages is empty.
var DefaultLanguages = []string{"javascript", "typescript", "jsx", "bash", "json", "css", "markdown"}

var languageAliases = map[string]string{
	"js":    "javascript",
	"mjs":   "javascript",
	"cjs":   "javascript",
	"ts":    "typescript",
	"sh":    "bash",
	"shell": "bash",
	"zsh":   "bash",
	"md":    "markdown",
	"mdx":   "markdown",
}

// LanguageSet is the fixed set of fence languages that get highlighted.
// It is built once and never mutated, so it is safe to share.
type LanguageSet struct {
	names map[string]struct{}
}

// NewLanguageSet normalises names (lower case, aliases resolved) into a set.
func NewLanguageSet(names []string) (*LanguageSet, error) {
	if len(names) == 0 {
		names = DefaultLanguages
	}
	set := &LanguageSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		key := NormalizeLanguage(name)
		if key == "" {
			return nil, fmt.Errorf("markdown: blank highlight language in %q", names)
		}
		set.names[key] = struct{}{}
	}
	return set, nil
}

// NormalizeLanguage lower-cases lang and resolves known aliases.
func NormalizeLanguage(lang string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if canonical, ok := languageAliases[key]; ok {
		return canonical
	}
	return key
}

// Contains reports whether lang (or its alias) is in the set.
func (s *LanguageSet) Contains(lang string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[NormalizeLanguage(lang)]
	return ok
}

// Names returns the sorted canonical names.
func (s *LanguageSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Unresolved lists languages chroma has no lexer for. Blocks in those
// languages still render through the highlighter with a plain-text lexer.
func (s *LanguageSet) Unresolved() []string {
	var out []string
	for _, name := range s.Names() {
		if lexers.Get(name) == nil {
			out = append(out, name)
		}
	}
	return out
}
