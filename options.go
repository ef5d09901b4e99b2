package gridcell

import "github.com/gogpu/gg"

// Option configures a GridRenderer during creation.
//
// Example:
//
//	r := gridcell.New(store, store, renderer,
//	    gridcell.WithZoom(1.5),
//	    gridcell.WithSelectionColor(gg.Hex("#3465a4")),
//	)
type Option func(*options)

type options struct {
	zoom          float64
	background    gg.RGBA
	selection     gg.RGBA
	cursor        gg.RGBA
	erase         gg.RGBA
	cacheCapacity int
}

func defaultOptions() options {
	return options{
		zoom:       1,
		background: gg.White,
		selection:  gg.RGB(0.2, 0.4, 0.8),
		cursor:     gg.Black,
		erase:      gg.White,
	}
}

// WithZoom sets the initial zoom factor. Values that are not finite and
// positive are ignored.
func WithZoom(zoom float64) Option {
	return func(o *options) {
		if validZoom(zoom) {
			o.zoom = zoom
		}
	}
}

// WithBackground sets the base color every cell surface is cleared to.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithSelectionColor sets the selection tint. Its alpha is always
// SelectionAlpha.
func WithSelectionColor(c gg.RGBA) Option {
	return func(o *options) {
		o.selection = c
	}
}

// WithCursorColor sets the color of the cursor carets.
func WithCursorColor(c gg.RGBA) Option {
	return func(o *options) {
		o.cursor = c
	}
}

// WithEraseColor sets the color used to erase the previous cursor carets.
func WithEraseColor(c gg.RGBA) Option {
	return func(o *options) {
		o.erase = c
	}
}

// WithCacheCapacity sets the per-shard surface cache capacity.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}
