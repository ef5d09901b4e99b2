package gridcell

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/gridcell/cache"
)

// GridRenderer draws cells of one grid view. It owns the view's surface
// cache and cursor state and must be used from the view's paint loop only.
type GridRenderer struct {
	geometry *GeometryResolver
	keys     *CacheKeyBuilder
	cache    *SurfaceCache
	painter  *CellPainter
	cursor   *CursorOverlay
	zoom     float64
}

// New creates a renderer reading cell state from attrs and values and
// delegating content drawing to content.
func New(attrs AttributeStore, values ValueSource, content ContentRenderer, opts ...Option) *GridRenderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	geometry := NewGeometryResolver(attrs)
	return &GridRenderer{
		geometry: geometry,
		keys:     NewCacheKeyBuilder(attrs, values),
		cache:    NewSurfaceCache(o.cacheCapacity),
		painter:  NewCellPainter(content, o.background, o.selection),
		cursor:   NewCursorOverlay(geometry, o.cursor, o.erase),
		zoom:     o.zoom,
	}
}

// Zoom returns the current zoom factor.
func (r *GridRenderer) Zoom() float64 {
	return r.zoom
}

// SetZoom changes the zoom factor. Surfaces painted at other zoom factors
// stay cached under their own keys.
func (r *GridRenderer) SetZoom(zoom float64) error {
	if !validZoom(zoom) {
		return ErrInvalidZoom
	}
	r.zoom = zoom
	return nil
}

// validZoom reports whether zoom is a finite positive factor. NaN fails
// the comparison.
func validZoom(zoom float64) bool {
	return zoom > 0 && !math.IsInf(zoom, 0)
}

// Geometry returns the renderer's geometry resolver.
func (r *GridRenderer) Geometry() *GeometryResolver { return r.geometry }

// Cursor returns the renderer's cursor overlay.
func (r *GridRenderer) Cursor() *CursorOverlay { return r.cursor }

// Stats returns the surface cache counters.
func (r *GridRenderer) Stats() cache.Stats {
	return r.cache.Stats()
}

// Close drops all cached surfaces. Call it when the view is torn down.
func (r *GridRenderer) Close() error {
	r.cache.Clear()
	r.cursor.Reset()
	return nil
}

// DrawCell draws the cell (row, col) of the viewport's current table onto
// dc. naive is the cell's unmerged device rectangle as laid out by the
// host.
//
// Cells with nothing to paint at this position (members of a merge drawn by
// another cell) are skipped without error. A failing content renderer is
// reported as a *RenderError and nothing is cached for the cell.
func (r *GridRenderer) DrawCell(dc *gg.Context, vp Viewport, row, col int, naive Rect, selected bool) error {
	key := CellKey{Row: row, Col: col, Table: vp.CurrentTable()}

	owner, rect, ok := r.geometry.DrawnCell(vp, key, naive)
	if !ok || rect.Empty() {
		return nil
	}

	zoom := r.zoom
	cacheKey := r.keys.Build(owner, rect, zoom, selected)
	surface, err := r.cache.GetOrRender(cacheKey, func() (*Surface, error) {
		Logger().Debug("gridcell: surface cache miss", "cell", owner, "width", rect.Width, "height", rect.Height)
		return r.painter.Paint(owner, rect, zoom, selected)
	})
	if err != nil {
		Logger().Warn("gridcell: cell render failed", "cell", owner, "err", err)
		return err
	}

	surface.blit(dc, rect.X, rect.Y)

	// The blit covered any carets inside rect; redraw them when the cursor
	// sits on this cell or inside the merge it paints.
	cr, cc := vp.Cursor()
	if r.geometry.Owner(CellKey{Row: cr, Col: cc, Table: key.Table}) == owner {
		return r.cursor.MoveTo(dc, vp, zoom, cr, cc)
	}
	return nil
}

// DrawRange draws the inclusive block of cells row-major and stops at the
// first error. selected may be nil.
func (r *GridRenderer) DrawRange(dc *gg.Context, vp Viewport, top, left, bottom, right int, selected func(row, col int) bool) error {
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			sel := selected != nil && selected(row, col)
			if err := r.DrawCell(dc, vp, row, col, vp.CellToRect(row, col), sel); err != nil {
				return err
			}
		}
	}
	return nil
}
