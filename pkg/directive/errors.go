package directive

import (
	"errors"

	"github.com/flosch/pongo2/v6"
)

var (
	// ErrMissingTitle is wrapped by the compile error raised when the tag is
	// used without any argument.
	ErrMissingTitle = errors.New("requires dialog title as argument")
	// ErrInvalidName reports a tag name pongo2 cannot lex as an identifier.
	ErrInvalidName = errors.New("directive: invalid tag name")
	// ErrNilDirective is returned by Install when given a nil directive.
	ErrNilDirective = errors.New("directive: directive is nil")
)

// IsMissingTitle reports whether err, or the pongo2 error it wraps, was
// caused by a tag invocation without a title.
func IsMissingTitle(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingTitle) {
		return true
	}
	var perr *pongo2.Error
	if errors.As(err, &perr) && perr.OrigError != nil {
		return errors.Is(perr.OrigError, ErrMissingTitle)
	}
	return false
}
