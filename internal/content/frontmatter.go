package content

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FrontMatter is the metadata block at the top of a post.
type FrontMatter struct {
	Title       string
	Date        string
	Category    string
	Description string
	Tags        []string
	Author      string
}

type frontMatterEnvelope struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Date        any      `yaml:"date" toml:"date" json:"date"`
	Category    string   `yaml:"category" toml:"category" json:"category"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
	Author      string   `yaml:"author" toml:"author" json:"author"`
}

// ParseFrontMatter splits source into its metadata and markdown body.
// Date and category are required; a missing block fails validation.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var env frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm := FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Date:        dateString(env.Date),
		Category:    env.Category,
		Description: env.Description,
		Tags:        append([]string{}, env.Tags...),
		Author:      env.Author,
	}
	if err := fm.Validate(); err != nil {
		return FrontMatter{}, nil, fmt.Errorf("validate frontmatter: %w", err)
	}
	return fm, body, nil
}

// Validate checks the keys a post cannot be placed without: a date to sort
// by and a category to file it under. Title falls back to the file name and
// description may be empty.
func (fm FrontMatter) Validate() error {
	return validation.ValidateStruct(&fm,
		validation.Field(&fm.Date, validation.Required),
		validation.Field(&fm.Category, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value any) error {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
}

// dateString normalises the decoded date value. YAML and TOML decoders may
// hand back a time.Time for unquoted dates.
func dateString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// TitleFromSlug derives a display title from the last slug segment,
// "getting-started" becoming "Getting Started".
func TitleFromSlug(slug string) string {
	base := path.Base(StripExt(slug))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(base)
}
