package gridcell

import "github.com/gogpu/gg"

// Viewport is the host widget's view of the grid.
type Viewport interface {
	// CellToRect returns the unmerged device rectangle of (row, col) at the
	// current scroll offset. Cells outside the view get off-screen
	// coordinates, not an error.
	CellToRect(row, col int) Rect

	// IsMergedCellDrawn reports whether key, a non-anchor merge member,
	// stands in for its off-screen anchor at this scroll position.
	IsMergedCellDrawn(key CellKey) bool

	// CurrentTable returns the index of the displayed table.
	CurrentTable() int

	// Cursor returns the cursor cell.
	Cursor() (row, col int)
}

// AttributeStore provides per-cell formatting attributes.
type AttributeStore interface {
	// Attributes returns the attribute set of key. The result must not be
	// modified by the caller.
	Attributes(key CellKey) Attributes

	// MergingCell returns the anchor of the merge area containing key.
	MergingCell(key CellKey) (CellKey, bool)
}

// ValueSource provides cell content.
type ValueSource interface {
	// Value returns the evaluated value of key, which may be an error.
	Value(key CellKey) any

	// Definition returns the unevaluated representation of key (its code or
	// formula). It never triggers evaluation.
	Definition(key CellKey) any
}

// ContentRenderer draws one cell's content into dc. bounds is in logical
// units; dc is already scaled by the zoom factor.
type ContentRenderer interface {
	Render(dc *gg.Context, key CellKey, bounds Bounds) error
}

// ContentRendererFunc adapts a function to ContentRenderer.
type ContentRendererFunc func(dc *gg.Context, key CellKey, bounds Bounds) error

func (f ContentRendererFunc) Render(dc *gg.Context, key CellKey, bounds Bounds) error {
	return f(dc, key, bounds)
}
