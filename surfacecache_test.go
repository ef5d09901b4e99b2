package gridcell_test

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gridcell"
)

func paintBlank(t *testing.T) *gridcell.Surface {
	t.Helper()
	p := gridcell.NewCellPainter(gridcell.ContentRendererFunc(func(*gg.Context, gridcell.CellKey, gridcell.Bounds) error {
		return nil
	}), gg.White, gg.Black)
	s, err := p.Paint(gridcell.CellKey{}, gridcell.Rect{Width: 4, Height: 4}, 1, false)
	require.NoError(t, err)
	return s
}

func TestSurfaceCacheGetOrRender(t *testing.T) {
	c := gridcell.NewSurfaceCache(0)
	key := gridcell.DrawCacheKey{Width: 4, Height: 4, Zoom: 1, Preview: `"a"`}
	blank := paintBlank(t)

	renders := 0
	render := func() (*gridcell.Surface, error) {
		renders++
		return blank, nil
	}
	for range 3 {
		s, err := c.GetOrRender(key, render)
		require.NoError(t, err)
		assert.Same(t, blank, s)
	}
	assert.Equal(t, 1, renders)
	assert.Equal(t, 1, c.Len())

	s, ok := c.Get(key)
	assert.True(t, ok)
	assert.Same(t, blank, s)

	other := key
	other.Selected = true
	_, ok = c.Get(other)
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestSurfaceCacheFailure(t *testing.T) {
	c := gridcell.NewSurfaceCache(4)
	key := gridcell.DrawCacheKey{Width: 1, Height: 1, Zoom: 1}

	_, err := c.GetOrRender(key, func() (*gridcell.Surface, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, c.Len())

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 4, c.Stats().Capacity)
}
