package gridcell

// GeometryResolver maps cells to the rectangle they are painted in.
// Geometry is recomputed from the viewport on every call so that results
// always reflect the current scroll offset.
type GeometryResolver struct {
	attrs AttributeStore
}

// NewGeometryResolver creates a resolver reading merge areas from attrs.
func NewGeometryResolver(attrs AttributeStore) *GeometryResolver {
	return &GeometryResolver{attrs: attrs}
}

// Resolve returns the rectangle key owns. Unmerged cells keep naive, merge
// anchors get the rectangle of the whole area, and the other members of a
// merge report false because the anchor paints for them.
func (g *GeometryResolver) Resolve(vp Viewport, key CellKey, naive Rect) (Rect, bool) {
	area, ok := g.attrs.Attributes(key).MergeArea()
	if !ok {
		if anchor, merged := g.attrs.MergingCell(key); merged && anchor != key {
			return Rect{}, false
		}
		return naive, true
	}

	if !area.IsAnchor(key.Row, key.Col) {
		return Rect{}, false
	}

	tl := vp.CellToRect(area.Top, area.Left)
	br := vp.CellToRect(area.Bottom, area.Right)
	return tl.Union(br), true
}

// DrawnRect is Resolve with a fallback for merges whose anchor is scrolled
// out of view: the member the viewport reports as drawn paints the whole
// area, located through the anchor's coordinates.
func (g *GeometryResolver) DrawnRect(vp Viewport, key CellKey, naive Rect) (Rect, bool) {
	_, rect, ok := g.DrawnCell(vp, key, naive)
	return rect, ok
}

// DrawnCell is DrawnRect that also returns the cell whose content fills the
// rectangle: key itself, or the merge anchor when the fallback applies.
func (g *GeometryResolver) DrawnCell(vp Viewport, key CellKey, naive Rect) (CellKey, Rect, bool) {
	if rect, ok := g.Resolve(vp, key, naive); ok {
		return key, rect, true
	}
	if !vp.IsMergedCellDrawn(key) {
		return key, Rect{}, false
	}

	anchor, ok := g.attrs.MergingCell(key)
	if !ok {
		return key, Rect{}, false
	}
	rect, ok := g.Resolve(vp, anchor, vp.CellToRect(anchor.Row, anchor.Col))
	return anchor, rect, ok
}

// Owner returns the cell that paints key: the anchor of its merge area, or
// key itself.
func (g *GeometryResolver) Owner(key CellKey) CellKey {
	if anchor, ok := g.attrs.MergingCell(key); ok {
		return anchor
	}
	return key
}

// AreaRect returns the rectangle of the whole cell key belongs to, whether
// or not key is the cell that paints it.
func (g *GeometryResolver) AreaRect(vp Viewport, key CellKey) (Rect, bool) {
	owner := g.Owner(key)
	return g.Resolve(vp, owner, vp.CellToRect(owner.Row, owner.Col))
}
