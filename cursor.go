package gridcell

import (
	"math"

	"github.com/gogpu/gg"
)

// CursorOverlay draws the cursor as four small carets in the corners of the
// cursor cell, on top of the cached cell bitmap. Moving the cursor erases
// the previous carets and draws the new ones, so the content cache is never
// invalidated by cursor movement.
type CursorOverlay struct {
	geometry *GeometryResolver
	color    gg.RGBA
	erase    gg.RGBA

	row, col int
	drawn    bool

	stroke func(*gg.Context) error
}

// NewCursorOverlay creates an overlay drawing carets in color and erasing
// them with erase.
func NewCursorOverlay(geometry *GeometryResolver, color, erase gg.RGBA) *CursorOverlay {
	return &CursorOverlay{geometry: geometry, color: color, erase: erase, stroke: (*gg.Context).Stroke}
}

// Position returns the cell of the last drawn cursor.
func (o *CursorOverlay) Position() (row, col int) {
	return o.row, o.col
}

// Drawn reports whether a cursor decoration is currently on the display.
func (o *CursorOverlay) Drawn() bool {
	return o.drawn
}

// Reset forgets the drawn cursor without erasing it, for use after the
// host repainted the whole display.
func (o *CursorOverlay) Reset() {
	o.row, o.col = 0, 0
	o.drawn = false
}

// MoveTo erases the carets of the previous cursor cell and draws them at
// (row, col). Before the first draw there is nothing to erase and the erase
// step is skipped.
//
// If the new carets fail to draw after the old ones were erased, the
// overlay reports no cursor on the display.
func (o *CursorOverlay) MoveTo(dc *gg.Context, vp Viewport, zoom float64, row, col int) error {
	if o.drawn {
		if err := o.paint(dc, vp, zoom, o.row, o.col, o.erase); err != nil {
			return err
		}
		o.drawn = false
	}
	if err := o.paint(dc, vp, zoom, row, col, o.color); err != nil {
		return err
	}
	o.row, o.col = row, col
	o.drawn = true
	return nil
}

// Update is MoveTo for hosts that repaint the cursor on their own, outside
// GridRenderer.DrawCell.
func (o *CursorOverlay) Update(dc *gg.Context, vp Viewport, zoom float64, row, col int) error {
	return o.MoveTo(dc, vp, zoom, row, col)
}

// paint strokes the four carets of the cell containing (row, col); a cursor
// inside a merge decorates the whole merge area. Cells without a visible
// rectangle are skipped.
func (o *CursorOverlay) paint(dc *gg.Context, vp Viewport, zoom float64, row, col int, c gg.RGBA) error {
	key := CellKey{Row: row, Col: col, Table: vp.CurrentTable()}
	rect, ok := o.geometry.AreaRect(vp, key)
	if !ok || rect.Empty() {
		return nil
	}

	size := zoomedSize(1, zoom)
	caret := float64(min(rect.Width, rect.Height) / 5)

	// Stroke through pixel centers so a width-1 line covers whole pixels.
	half := float64(size) / 2
	left := float64(rect.X) + half
	upper := float64(rect.Y) + half
	right := float64(rect.X+rect.Width-size-1) + half
	lower := float64(rect.Y+rect.Height-size-1) + half

	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.SetLineWidth(float64(size))

	corners := [4][3]gg.Point{
		{gg.Pt(right, lower-caret), gg.Pt(right, lower), gg.Pt(right-caret, lower)},
		{gg.Pt(right, upper+caret), gg.Pt(right, upper), gg.Pt(right-caret, upper)},
		{gg.Pt(left, upper+caret), gg.Pt(left, upper), gg.Pt(left+caret, upper)},
		{gg.Pt(left, lower-caret), gg.Pt(left, lower), gg.Pt(left+caret, lower)},
	}
	for _, pts := range corners {
		dc.MoveTo(pts[0].X, pts[0].Y)
		dc.LineTo(pts[1].X, pts[1].Y)
		dc.LineTo(pts[2].X, pts[2].Y)
	}
	if err := o.stroke(dc); err != nil {
		Logger().Warn("gridcell: cursor stroke failed", "cell", key, "err", err)
		return err
	}
	return nil
}

// zoomedSize scales a logical line width to whole device pixels, never
// below one.
func zoomedSize(size, zoom float64) int {
	return int(math.Max(1, math.Round(size*zoom)))
}
