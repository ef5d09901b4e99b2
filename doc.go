// Package gridcell renders spreadsheet cells for a scrolling grid view and
// caches the rendered bitmaps.
//
// # Overview
//
// A host widget calls [GridRenderer.DrawCell] once per visible cell on every
// repaint. The renderer
//
//   - resolves the on-screen rectangle of the cell, collapsing merged cells
//     onto their anchor (top-left) cell, even when the anchor is scrolled
//     out of view ([GeometryResolver]);
//   - derives a [DrawCacheKey] from the cell's semantic state: size,
//     selection, a bounded preview of its content and its attributes
//     ([CacheKeyBuilder]);
//   - returns a cached [Surface] for that key, or paints a new one
//     ([SurfaceCache], [CellPainter]);
//   - blits the surface onto the display and refreshes the cursor
//     decoration ([CursorOverlay]).
//
// # Collaborators
//
// Everything outside the rendering core is consumed through small
// interfaces: [Viewport] (host geometry and scrolling), [AttributeStore]
// (merge areas and formatting), [ValueSource] (evaluated values and raw
// definitions) and [ContentRenderer] (draws one cell's content).
// Packages sheet, xlsx, viewport and content provide implementations.
//
// # Quick Start
//
//	store := sheet.New(nil)
//	store.SetCode(gridcell.CellKey{Row: 0, Col: 0}, "X")
//	_ = store.Merge(0, gridcell.MergeArea{Top: 0, Left: 0, Bottom: 1, Right: 1})
//
//	vp := viewport.New(store, 800, 600)
//	text, err := content.NewTextRenderer(store, store)
//	if err != nil {
//	    return err
//	}
//	r := gridcell.New(store, store, text)
//	defer r.Close()
//
//	dc := gg.NewContext(800, 600)
//	top, left, bottom, right := vp.VisibleRange()
//	_ = r.DrawRange(dc, vp, top, left, bottom, right, nil)
//
// # Coordinates
//
// [Rect] values are device pixels (zoom applied). [Bounds] values are
// logical units; the painter scales them by the zoom factor.
//
// # Concurrency
//
// A GridRenderer belongs to one view and must be driven from that view's
// paint loop. Its SurfaceCache is safe for concurrent use.
package gridcell
