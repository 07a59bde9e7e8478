package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSources indicates an import or merge without any source.
	ErrNoSources = errors.New("no sources given")

	// ErrDuplicateStyle indicates two sources resolve to the same style name.
	ErrDuplicateStyle = errors.New("duplicate style name")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrNothingToExport indicates the style filter matched no layer.
	ErrNothingToExport = errors.New("nothing to export")
)

// DuplicateStyleError reports a source whose style name another source of the
// same import already uses.
type DuplicateStyleError struct {
	Style     string
	Path      string
	OtherPath string
}

func (e *DuplicateStyleError) Error() string {
	return fmt.Sprintf("cannot import source %s: style %q is already provided by %s", e.Path, e.Style, e.OtherPath)
}

// Is makes errors.Is(err, ErrDuplicateStyle) hold.
func (e *DuplicateStyleError) Is(target error) bool {
	return target == ErrDuplicateStyle
}
