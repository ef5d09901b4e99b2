// Package viewport lays out a scrolling grid of variable-size rows and
// columns in device pixels. Grid implements gridcell.Viewport.
package viewport

import (
	"errors"
	"math"

	"github.com/gogpu/gridcell"
)

// Default logical cell size.
const (
	DefaultRowHeight   = 20
	DefaultColumnWidth = 100
)

// ErrInvalidZoom is returned for zoom factors that are not finite and
// positive.
var ErrInvalidZoom = errors.New("viewport: zoom must be finite and positive")

// Sizes supplies logical row heights and column widths.
type Sizes interface {
	RowHeight(table, row int) float64
	ColumnWidth(table, col int) float64
}

// Uniform is a Sizes with the same size for every row and column.
type Uniform struct {
	Row, Column float64
}

func (u Uniform) RowHeight(int, int) float64   { return u.Row }
func (u Uniform) ColumnWidth(int, int) float64 { return u.Column }

// Grid is a viewport onto one table of a sheet. The first visible row and
// column form the scroll offset. Grid is not safe for concurrent use.
type Grid struct {
	attrs  gridcell.AttributeStore
	sizes  Sizes
	width  int
	height int

	table     int
	topRow    int
	leftCol   int
	cursorRow int
	cursorCol int
	zoom      float64
}

// New creates a width × height pixel viewport with uniform default sizes.
func New(attrs gridcell.AttributeStore, width, height int) *Grid {
	return &Grid{
		attrs:  attrs,
		sizes:  Uniform{Row: DefaultRowHeight, Column: DefaultColumnWidth},
		width:  width,
		height: height,
		zoom:   1,
	}
}

// SetSizes replaces the row and column size source.
func (g *Grid) SetSizes(s Sizes) {
	g.sizes = s
}

// Resize changes the pixel size of the viewport.
func (g *Grid) Resize(width, height int) {
	g.width, g.height = width, height
}

// Size returns the pixel size of the viewport.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Zoom returns the zoom factor.
func (g *Grid) Zoom() float64 {
	return g.zoom
}

// SetZoom changes the zoom factor.
func (g *Grid) SetZoom(zoom float64) error {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return ErrInvalidZoom
	}
	g.zoom = zoom
	return nil
}

// ScrollTo makes (row, col) the top-left visible cell.
func (g *Grid) ScrollTo(row, col int) {
	g.topRow = max(row, 0)
	g.leftCol = max(col, 0)
}

// Scroll returns the top-left visible cell.
func (g *Grid) Scroll() (row, col int) {
	return g.topRow, g.leftCol
}

// SetTable switches the displayed table.
func (g *Grid) SetTable(table int) {
	g.table = table
}

// CurrentTable implements gridcell.Viewport.
func (g *Grid) CurrentTable() int {
	return g.table
}

// SetCursor moves the cursor.
func (g *Grid) SetCursor(row, col int) {
	g.cursorRow, g.cursorCol = row, col
}

// Cursor implements gridcell.Viewport.
func (g *Grid) Cursor() (row, col int) {
	return g.cursorRow, g.cursorCol
}

// offset returns the logical distance from the first visible index to i,
// negative when i is scrolled past.
func offset(first, i int, size func(int) float64) float64 {
	var d float64
	for j := first; j < i; j++ {
		d += size(j)
	}
	for j := i; j < first; j++ {
		d -= size(j)
	}
	return d
}

func (g *Grid) rowHeight(row int) float64 { return g.sizes.RowHeight(g.table, row) }
func (g *Grid) colWidth(col int) float64  { return g.sizes.ColumnWidth(g.table, col) }

// CellToRect implements gridcell.Viewport. Edges are rounded from the
// scaled logical offsets, so adjacent cells share edges exactly.
func (g *Grid) CellToRect(row, col int) gridcell.Rect {
	x0 := offset(g.leftCol, col, g.colWidth)
	y0 := offset(g.topRow, row, g.rowHeight)
	x1 := x0 + g.colWidth(col)
	y1 := y0 + g.rowHeight(row)

	x := g.scale(x0)
	y := g.scale(y0)
	return gridcell.Rect{X: x, Y: y, Width: g.scale(x1) - x, Height: g.scale(y1) - y}
}

func (g *Grid) scale(v float64) int {
	return int(math.Round(v * g.zoom))
}

// VisibleRange returns the inclusive block of cells that intersect the
// viewport.
func (g *Grid) VisibleRange() (top, left, bottom, right int) {
	return g.topRow, g.leftCol, g.lastVisible(g.topRow, g.height, g.rowHeight), g.lastVisible(g.leftCol, g.width, g.colWidth)
}

func (g *Grid) lastVisible(first, extent int, size func(int) float64) int {
	limit := float64(extent) / g.zoom
	var d float64
	i := first
	for {
		s := size(i)
		if s <= 0 {
			return i // degenerate sizes would never fill the view
		}
		d += s
		if d >= limit {
			return i
		}
		i++
	}
}

func (g *Grid) visible(row, col int) bool {
	top, left, bottom, right := g.VisibleRange()
	return row >= top && row <= bottom && col >= left && col <= right
}

// IsMergedCellDrawn implements gridcell.Viewport. When a merge anchor is
// scrolled out of view, the top-left visible member of the merge paints
// the area.
func (g *Grid) IsMergedCellDrawn(key gridcell.CellKey) bool {
	anchor, ok := g.attrs.MergingCell(key)
	if !ok || anchor == key {
		return false
	}
	area, ok := g.attrs.Attributes(anchor).MergeArea()
	if !ok {
		return false
	}
	if g.visible(anchor.Row, anchor.Col) {
		return false
	}
	return key.Row == max(area.Top, g.topRow) && key.Col == max(area.Left, g.leftCol)
}

var _ gridcell.Viewport = (*Grid)(nil)
