package gridcell

import (
	"github.com/gogpu/gg"
)

// SelectionAlpha is the opacity of the selection tint.
const SelectionAlpha = 0.5

// CellPainter renders single cells into offscreen surfaces.
type CellPainter struct {
	content    ContentRenderer
	background gg.RGBA
	selection  gg.RGBA
}

// NewCellPainter creates a painter that delegates content drawing to
// content. The alpha of selection is replaced by SelectionAlpha.
func NewCellPainter(content ContentRenderer, background, selection gg.RGBA) *CellPainter {
	selection.A = SelectionAlpha
	return &CellPainter{
		content:    content,
		background: background,
		selection:  selection,
	}
}

// Paint renders key into a new surface of drawn's device size.
//
// The content renderer works in logical units: the context is scaled by
// zoom and its origin moved by half a device pixel so that axis-aligned
// one-pixel lines fall on pixel centers. The bounds passed to the renderer
// reach half a unit past every edge so borders cover tile seams.
func (p *CellPainter) Paint(key CellKey, drawn Rect, zoom float64, selected bool) (*Surface, error) {
	if drawn.Empty() {
		return nil, ErrEmptyRect
	}
	if !validZoom(zoom) {
		return nil, ErrInvalidZoom
	}

	dc := gg.NewContext(drawn.Width, drawn.Height)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(p.background)

	dc.Push()
	dc.Translate(0.5, 0.5)
	dc.Scale(zoom, zoom)

	bounds := Bounds{
		X:      -0.5,
		Y:      -0.5,
		Width:  float64(drawn.Width)/zoom + 1,
		Height: float64(drawn.Height)/zoom + 1,
	}

	if err := p.content.Render(dc, key, bounds); err != nil {
		return nil, &RenderError{Key: key, Err: err}
	}

	if selected {
		dc.SetRGBA(p.selection.R, p.selection.G, p.selection.B, p.selection.A)
		dc.DrawRectangle(bounds.X, bounds.Y, bounds.Width, bounds.Height)
		if err := dc.Fill(); err != nil {
			return nil, &RenderError{Key: key, Err: err}
		}
	}
	dc.Pop()

	return newSurface(dc), nil
}
