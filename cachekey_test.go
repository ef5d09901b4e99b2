package gridcell_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/gridcell"
	"github.com/gogpu/gridcell/sheet"
)

func TestBuildStable(t *testing.T) {
	s := sheet.New(nil)
	k := gridcell.CellKey{Row: 1, Col: 1}
	s.SetCode(k, "hello")
	s.SetAttr(k, gridcell.AttrBackground, "#ffeecc")
	b := gridcell.NewCacheKeyBuilder(s, s)

	rect := gridcell.Rect{Width: 100, Height: 20}
	assert.Equal(t, b.Build(k, rect, 1, false), b.Build(k, rect, 1, false))

	// Another cell with the same state shares the key.
	other := gridcell.CellKey{Row: 7, Col: 3}
	s.SetCode(other, "hello")
	s.SetAttr(other, gridcell.AttrBackground, "#ffeecc")
	assert.Equal(t, b.Build(k, rect, 1, false), b.Build(other, rect, 1, false))
}

func TestBuildChangesWithInputs(t *testing.T) {
	s := sheet.New(nil)
	k := gridcell.CellKey{}
	s.SetCode(k, "v")
	b := gridcell.NewCacheKeyBuilder(s, s)
	rect := gridcell.Rect{Width: 100, Height: 20}
	base := b.Build(k, rect, 1, false)

	assert.NotEqual(t, base, b.Build(k, gridcell.Rect{Width: 101, Height: 20}, 1, false), "width")
	assert.NotEqual(t, base, b.Build(k, gridcell.Rect{Width: 100, Height: 21}, 1, false), "height")
	assert.NotEqual(t, base, b.Build(k, rect, 1, true), "selection")

	s.SetCode(k, "w")
	assert.NotEqual(t, base, b.Build(k, rect, 1, false), "value")

	s.SetCode(k, "v")
	s.SetAttr(k, gridcell.AttrTextColor, "#123456")
	assert.NotEqual(t, base, b.Build(k, rect, 1, false), "attribute")
}

func TestBuildZoom(t *testing.T) {
	s := sheet.New(nil)
	b := gridcell.NewCacheKeyBuilder(s, s)
	k := gridcell.CellKey{}

	k1 := b.Build(k, gridcell.Rect{Width: 100, Height: 20}, 1, false)
	k2 := b.Build(k, gridcell.Rect{Width: 200, Height: 40}, 2, false)

	assert.Equal(t, k1.Width, k2.Width)
	assert.Equal(t, k1.Height, k2.Height)
	assert.NotEqual(t, k1, k2, "surfaces painted at different zoom are distinct")
}

// orderedStore returns attribute sets built in a caller-chosen insertion
// order.
type orderedStore struct {
	pairs []gridcell.AttributePair
}

func (o orderedStore) Attributes(gridcell.CellKey) gridcell.Attributes {
	a := gridcell.Attributes{}
	for _, p := range o.pairs {
		a[p.Name] = p.Value
	}
	return a
}

func (orderedStore) MergingCell(gridcell.CellKey) (gridcell.CellKey, bool) {
	return gridcell.CellKey{}, false
}

func TestBuildAttributeOrder(t *testing.T) {
	pairs := []gridcell.AttributePair{
		{Name: gridcell.AttrBackground, Value: "#ff0000"},
		{Name: gridcell.AttrFontSize, Value: 12.0},
		{Name: gridcell.AttrJustification, Value: "right"},
	}
	reversed := []gridcell.AttributePair{pairs[2], pairs[1], pairs[0]}
	values := sheet.New(nil)

	a := gridcell.NewCacheKeyBuilder(orderedStore{pairs}, values).Build(gridcell.CellKey{}, gridcell.Rect{Width: 5, Height: 5}, 1, false)
	b := gridcell.NewCacheKeyBuilder(orderedStore{reversed}, values).Build(gridcell.CellKey{}, gridcell.Rect{Width: 5, Height: 5}, 1, false)
	assert.Equal(t, a, b)

	got := gridcell.AttributePairs(orderedStore{reversed}.Attributes(gridcell.CellKey{}))
	assert.Equal(t, []gridcell.AttributePair{pairs[0], pairs[2], pairs[1]}, got, "sorted by name")
}

func TestBuildButtonUsesDefinition(t *testing.T) {
	evaluated := 0
	s := sheet.New(func(_ gridcell.CellKey, code string) (any, error) {
		evaluated++
		return code, nil
	})
	k := gridcell.CellKey{Row: 2}
	s.SetCode(k, "fire()")
	s.SetButton(k, "Fire")

	key := gridcell.NewCacheKeyBuilder(s, s).Build(k, gridcell.Rect{Width: 10, Height: 10}, 1, false)
	assert.Zero(t, evaluated)
	assert.Equal(t, gridcell.Preview("fire()"), key.Preview)
}

func TestPreview(t *testing.T) {
	assert.Empty(t, gridcell.Preview(nil))
	assert.Equal(t, `"abc"`, gridcell.Preview("abc"))
	assert.Equal(t, "42", gridcell.Preview(42))
	assert.NotEqual(t, gridcell.Preview("1"), gridcell.Preview(1), "type is part of the preview")
	assert.Equal(t, `error("boom")`, gridcell.Preview(errors.New("boom")))

	long := gridcell.Preview(strings.Repeat("é", 500))
	assert.Equal(t, gridcell.MaxPreviewRunes, len([]rune(long)))

	// Composed and decomposed forms preview identically.
	assert.Equal(t, gridcell.Preview("\u00e9"), gridcell.Preview("e\u0301"))
}
