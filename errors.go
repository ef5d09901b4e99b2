package gridcell

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRect is returned when asked to paint a rectangle without area.
	ErrEmptyRect = errors.New("gridcell: empty cell rectangle")

	// ErrInvalidZoom is returned for zoom factors that are not finite and positive.
	ErrInvalidZoom = errors.New("gridcell: zoom must be finite and positive")
)

// RenderError reports a ContentRenderer failure for one cell. The partially
// painted surface is discarded and never cached.
type RenderError struct {
	Key CellKey
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("gridcell: render cell %s: %v", e.Key, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
