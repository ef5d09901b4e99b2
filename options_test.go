package gridcell

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.InDelta(t, 1.0, o.zoom, 1e-9)
	assert.Equal(t, gg.White, o.background)
	assert.Equal(t, gg.Black, o.cursor)
	assert.Equal(t, gg.White, o.erase)
	assert.Zero(t, o.cacheCapacity)
}

func TestOptionsApply(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(t *testing.T, o options)
	}{
		{"zoom", WithZoom(1.5), func(t *testing.T, o options) { assert.InDelta(t, 1.5, o.zoom, 1e-9) }},
		{"zero zoom ignored", WithZoom(0), func(t *testing.T, o options) { assert.InDelta(t, 1.0, o.zoom, 1e-9) }},
		{"NaN zoom ignored", WithZoom(math.NaN()), func(t *testing.T, o options) { assert.InDelta(t, 1.0, o.zoom, 1e-9) }},
		{"infinite zoom ignored", WithZoom(math.Inf(1)), func(t *testing.T, o options) { assert.InDelta(t, 1.0, o.zoom, 1e-9) }},
		{"background", WithBackground(gg.Red), func(t *testing.T, o options) { assert.Equal(t, gg.Red, o.background) }},
		{"selection", WithSelectionColor(gg.Red), func(t *testing.T, o options) { assert.Equal(t, gg.Red, o.selection) }},
		{"cursor", WithCursorColor(gg.Red), func(t *testing.T, o options) { assert.Equal(t, gg.Red, o.cursor) }},
		{"erase", WithEraseColor(gg.Red), func(t *testing.T, o options) { assert.Equal(t, gg.Red, o.erase) }},
		{"capacity", WithCacheCapacity(32), func(t *testing.T, o options) { assert.Equal(t, 32, o.cacheCapacity) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			tt.check(t, o)
		})
	}
}

func TestSelectionAlphaForced(t *testing.T) {
	p := NewCellPainter(nil, gg.White, gg.RGBA{R: 1, A: 1})
	assert.InDelta(t, SelectionAlpha, p.selection.A, 1e-9)
}

func TestZoomedSize(t *testing.T) {
	assert.Equal(t, 1, zoomedSize(1, 0.25))
	assert.Equal(t, 1, zoomedSize(1, 1))
	assert.Equal(t, 2, zoomedSize(1, 1.5))
	assert.Equal(t, 3, zoomedSize(1, 3))
}
