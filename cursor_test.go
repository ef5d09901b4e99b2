package gridcell_test

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gridcell"
	"github.com/gogpu/gridcell/sheet"
	"github.com/gogpu/gridcell/viewport"
)

func isRed(dc *gg.Context, x, y int) bool {
	r, g, b, _ := dc.Image().At(x, y).RGBA()
	return r>>8 > 240 && g>>8 < 16 && b>>8 < 16
}

func TestCursorFirstMoveDoesNotErase(t *testing.T) {
	s := sheet.New(nil)
	vp := viewport.New(s, 400, 100)
	o := gridcell.NewCursorOverlay(gridcell.NewGeometryResolver(s), gg.Black, gg.White)

	dc := gg.NewContext(400, 100)
	dc.ClearWithColor(gg.Red)
	assert.False(t, o.Drawn())

	require.NoError(t, o.MoveTo(dc, vp, 1, 1, 1))
	assert.True(t, isRed(dc, 2, 0), "no erase strokes before the first cursor")
	assert.True(t, dark(dc.Image(), 102, 20))
	assert.True(t, o.Drawn())

	require.NoError(t, o.MoveTo(dc, vp, 1, 2, 2))
	assert.True(t, white(dc.Image(), 102, 20), "previous carets erased")
	assert.True(t, dark(dc.Image(), 202, 40))
	assert.True(t, isRed(dc, 150, 30), "cell interiors untouched")

	row, col := o.Position()
	assert.Equal(t, [2]int{2, 2}, [2]int{row, col})

	o.Reset()
	assert.False(t, o.Drawn())
}

func TestCursorZoomedWidth(t *testing.T) {
	s := sheet.New(nil)
	vp := viewport.New(s, 400, 100)
	require.NoError(t, vp.SetZoom(2))
	o := gridcell.NewCursorOverlay(gridcell.NewGeometryResolver(s), gg.Black, gg.White)

	dc := gg.NewContext(400, 100)
	dc.ClearWithColor(gg.White)
	require.NoError(t, o.MoveTo(dc, vp, 2, 0, 0))

	assert.True(t, dark(dc.Image(), 4, 0))
	assert.True(t, dark(dc.Image(), 4, 1), "two pixel wide caret at zoom 2")
	assert.True(t, white(dc.Image(), 4, 2))
}

func TestCursorOffscreen(t *testing.T) {
	s := sheet.New(nil)
	vp := viewport.New(s, 400, 100)
	o := gridcell.NewCursorOverlay(gridcell.NewGeometryResolver(s), gg.Black, gg.White)
	dc := gg.NewContext(400, 100)
	dc.ClearWithColor(gg.White)

	// Off-screen cells get off-screen strokes; nothing on the display changes.
	require.NoError(t, o.MoveTo(dc, vp, 1, 50, 50))
	assert.True(t, white(dc.Image(), 2, 0))
}

func TestCursorUpdate(t *testing.T) {
	s := sheet.New(nil)
	vp := viewport.New(s, 400, 100)
	o := gridcell.NewCursorOverlay(gridcell.NewGeometryResolver(s), gg.Black, gg.White)
	dc := gg.NewContext(400, 100)
	dc.ClearWithColor(gg.White)

	require.NoError(t, o.Update(dc, vp, 1, 0, 0))
	assert.True(t, dark(dc.Image(), 2, 0))
	row, col := o.Position()
	assert.Zero(t, row+col)
}

func TestCursorSingleInstance(t *testing.T) {
	s := sheet.New(nil)
	vp := viewport.New(s, 400, 100)
	o := gridcell.NewCursorOverlay(gridcell.NewGeometryResolver(s), gg.Black, gg.White)
	dc := gg.NewContext(400, 100)
	dc.ClearWithColor(gg.White)

	moves := [][2]int{{0, 0}, {1, 2}, {3, 1}, {4, 3}, {2, 2}}
	for _, m := range moves {
		require.NoError(t, o.MoveTo(dc, vp, 1, m[0], m[1]))
	}

	img := dc.Image()
	var decorated [][2]int
	for row := range 5 {
		for col := range 4 {
			r := vp.CellToRect(row, col)
			if dark(img, r.X+2, r.Y) {
				decorated = append(decorated, [2]int{row, col})
			}
		}
	}
	assert.Equal(t, [][2]int{{2, 2}}, decorated)
}
