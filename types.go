package gridcell

import "fmt"

// CellKey identifies one logical cell of a multi-table grid.
type CellKey struct {
	Row   int
	Col   int
	Table int
}

func (k CellKey) String() string {
	return fmt.Sprintf("(%d, %d, %d)", k.Row, k.Col, k.Table)
}

// MergeArea is an inclusive block of cells painted as one. It is stored
// only in the attribute set of its anchor, the top-left cell.
type MergeArea struct {
	Top, Left, Bottom, Right int
}

// Anchor returns the key of the area's top-left cell in table.
func (a MergeArea) Anchor(table int) CellKey {
	return CellKey{Row: a.Top, Col: a.Left, Table: table}
}

// Contains reports whether (row, col) lies inside the area.
func (a MergeArea) Contains(row, col int) bool {
	return row >= a.Top && row <= a.Bottom && col >= a.Left && col <= a.Right
}

// IsAnchor reports whether (row, col) is the area's top-left cell.
func (a MergeArea) IsAnchor(row, col int) bool {
	return row == a.Top && col == a.Left
}

// Rect is a rectangle in device pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle spanning from r's top-left corner to
// br's bottom-right corner.
func (r Rect) Union(br Rect) Rect {
	return Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  br.X + br.Width - r.X,
		Height: br.Y + br.Height - r.Y,
	}
}

// Bounds is a rectangle in logical (zoom-independent) units.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Well-known attribute names.
const (
	AttrMergeArea     = "merge_area"
	AttrButtonCell    = "button_cell"
	AttrBackground    = "bgcolor"
	AttrTextColor     = "textcolor"
	AttrBorderColor   = "bordercolor"
	AttrFontSize      = "pointsize"
	AttrJustification = "justification"
	AttrVerticalAlign = "vertical_align"
)

// Attributes is the formatting attribute set of one cell.
type Attributes map[string]any

// MergeArea returns the merge area stored on this cell. Only anchors carry
// one.
func (a Attributes) MergeArea() (MergeArea, bool) {
	switch v := a[AttrMergeArea].(type) {
	case MergeArea:
		return v, true
	case *MergeArea:
		if v != nil {
			return *v, true
		}
	}
	return MergeArea{}, false
}

// IsButton reports whether the cell is a button cell. The attribute holds
// either a bool or the button label; an empty label means no button.
func (a Attributes) IsButton() bool {
	switch v := a[AttrButtonCell].(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	return false
}

// String returns the string attribute name, or def.
func (a Attributes) String(name, def string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return def
}

// Float returns the numeric attribute name, or def.
func (a Attributes) Float(name string, def float64) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}
