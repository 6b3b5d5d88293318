package domain

import "errors"

// Domain errors
var (
	ErrNoDocuments         = errors.New("no valid PDF files found")
	ErrNoPages             = errors.New("document has no pages")
	ErrInvalidRotation     = errors.New("rotation must be a multiple of 90")
	ErrInvalidImage        = errors.New("invalid page image")
	ErrRasterizationFailed = errors.New("page rasterization failed")
)

// SelectionErrors collects every problem found in a page selection.
type SelectionErrors []string

func (e SelectionErrors) Error() string {
	if len(e) == 1 {
		return e[0]
	}
	return "invalid page selection"
}
