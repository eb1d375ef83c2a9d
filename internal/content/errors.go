package content

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeNotFound  = "POST_NOT_FOUND"
	TextCodeMalformed = "POST_MALFORMED"
	TextCodeIO        = "POST_IO"
	TextCodeWalk      = "CONTENT_WALK_FAILED"
)

func notFoundError(err error, slug string) error {
	return goerrors.Wrap(err, goerrors.CategoryNotFound, fmt.Sprintf("post %q not found", slug)).
		WithTextCode(TextCodeNotFound)
}

func malformedError(err error, slug string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("post %q is malformed", slug)).
		WithTextCode(TextCodeMalformed)
}

func ioError(err error, slug string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("post %q could not be read", slug)).
		WithTextCode(TextCodeIO)
}

func walkError(err error, root string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("walk content root %s", root)).
		WithTextCode(TextCodeWalk)
}

// IsNotFound reports whether err means the slug has no backing file.
func IsNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsMalformed reports whether err means the file exists but its front matter
// or body could not be processed.
func IsMalformed(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsIO reports whether err is a read or walk failure other than a missing file.
func IsIO(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryInternal)
}
