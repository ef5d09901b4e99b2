// Package content provides a gridcell.ContentRenderer that draws a cell's
// background, grid lines and value text.
package content

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gridcell"
	"github.com/gogpu/gridcell/cache"
)

// DefaultFontSize is the text size in logical points.
const DefaultFontSize = 10

// Padding is the logical distance between text and the cell edges.
const Padding = 2

// Horizontal and vertical alignment values of gridcell.AttrJustification and
// gridcell.AttrVerticalAlign.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
	AlignTop    = "top"
	AlignMiddle = "middle"
	AlignBottom = "bottom"
)

var (
	gridLineColor = gg.Hex("#c0c0c0")
	errorColor    = gg.Hex("#cc0000")
)

// TextRenderer draws cells as text. Button cells show their label and are
// never evaluated. Font faces are cached per device size.
type TextRenderer struct {
	attrs  gridcell.AttributeStore
	values gridcell.ValueSource
	source *text.FontSource
	faces  *cache.Sharded[float64, text.Face]
}

// NewTextRenderer creates a renderer using the Go Regular font.
func NewTextRenderer(attrs gridcell.AttributeStore, values gridcell.ValueSource) (*TextRenderer, error) {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("content: load font: %w", err)
	}
	return NewTextRendererWithFont(attrs, values, source), nil
}

// NewTextRendererWithFont creates a renderer drawing with source.
func NewTextRendererWithFont(attrs gridcell.AttributeStore, values gridcell.ValueSource, source *text.FontSource) *TextRenderer {
	return &TextRenderer{
		attrs:  attrs,
		values: values,
		source: source,
		faces:  cache.NewSharded[float64, text.Face](16, cache.Float64Hasher),
	}
}

// Render implements gridcell.ContentRenderer.
func (r *TextRenderer) Render(dc *gg.Context, key gridcell.CellKey, b gridcell.Bounds) error {
	attrs := r.attrs.Attributes(key)

	if bg, ok := attrs[gridcell.AttrBackground].(string); ok && bg != "" {
		c := gg.Hex(bg)
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	if err := r.drawGridLines(dc, attrs, b); err != nil {
		return err
	}

	label, isErr := r.label(key, attrs)
	if label == "" {
		return nil
	}
	textColor := gg.Black
	if isErr {
		textColor = errorColor
	} else if tc, ok := attrs[gridcell.AttrTextColor].(string); ok && tc != "" {
		textColor = gg.Hex(tc)
	}
	r.drawText(dc, attrs, b, label, textColor)
	return nil
}

// label returns the text shown in the cell and whether it is an error.
func (r *TextRenderer) label(key gridcell.CellKey, attrs gridcell.Attributes) (string, bool) {
	if attrs.IsButton() {
		if s, ok := attrs[gridcell.AttrButtonCell].(string); ok {
			return s, false
		}
		if d := r.values.Definition(key); d != nil {
			return fmt.Sprint(d), false
		}
		return "", false
	}

	switch v := r.values.Value(key).(type) {
	case nil:
		return "", false
	case error:
		return "#ERR: " + v.Error(), true
	case string:
		return v, false
	case float64:
		return fmt.Sprintf("%g", v), false
	default:
		return fmt.Sprint(v), false
	}
}

// drawGridLines strokes the right and bottom edges; neighbours draw the
// others.
func (r *TextRenderer) drawGridLines(dc *gg.Context, attrs gridcell.Attributes, b gridcell.Bounds) error {
	c := gridLineColor
	if bc, ok := attrs[gridcell.AttrBorderColor].(string); ok && bc != "" {
		c = gg.Hex(bc)
	}
	// b overhangs the surface by half a unit on every side.
	right := b.X + b.Width - 1.5
	bottom := b.Y + b.Height - 1.5

	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.SetLineWidth(1)
	dc.MoveTo(right, b.Y)
	dc.LineTo(right, bottom)
	dc.LineTo(b.X, bottom)
	return dc.Stroke()
}

// drawText places label inside b. Text is laid out in device space with a
// face sized for the current scale, and drawn under the identity transform
// so glyphs are rasterized at their final size.
func (r *TextRenderer) drawText(dc *gg.Context, attrs gridcell.Attributes, b gridcell.Bounds, label string, c gg.RGBA) {
	x0, y0 := dc.TransformPoint(b.X+Padding, b.Y+Padding)
	x1, y1 := dc.TransformPoint(b.X+b.Width-Padding-1, b.Y+b.Height-Padding-1)
	scale := (x1 - x0) / math.Max(b.Width-2*Padding-1, 1)
	if scale <= 0 {
		return
	}

	size := math.Round(attrs.Float(gridcell.AttrFontSize, DefaultFontSize) * scale)
	if size < 1 {
		return
	}
	face, _ := r.faces.GetOrCreate(size, func() (text.Face, error) {
		return r.source.Face(size), nil
	})
	dc.SetFont(face)
	dc.SetRGBA(c.R, c.G, c.B, c.A)

	w, h := dc.MeasureString(label)
	ascent := face.Metrics().Ascent

	var x float64
	switch attrs.String(gridcell.AttrJustification, AlignLeft) {
	case AlignCenter:
		x = (x0 + x1 - w) / 2
	case AlignRight:
		x = x1 - w
	default:
		x = x0
	}

	var y float64
	switch attrs.String(gridcell.AttrVerticalAlign, AlignTop) {
	case AlignMiddle:
		y = (y0+y1-h)/2 + ascent
	case AlignBottom:
		y = y1 - h + ascent
	default:
		y = y0 + ascent
	}

	dc.Push()
	dc.Identity()
	dc.DrawString(label, x, y)
	dc.Pop()
}

var _ gridcell.ContentRenderer = (*TextRenderer)(nil)
