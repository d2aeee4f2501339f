package box

import "errors"

var (
	// ErrMissingSortValue is returned when list requests sorting by a tag some
	// of its entries do not have. Box could not be produced.
	ErrMissingSortValue = errors.New("sort tag not found or empty sort value")
	// ErrMissingContainer is returned when mandatory list element of a box is
	// absent from export.
	ErrMissingContainer = errors.New("box list container is missing")
)
