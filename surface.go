package gridcell

import (
	"image"

	"github.com/gogpu/gg"
)

// Surface is a rendered cell bitmap in device pixels. A Surface is
// immutable once created; a changed cell produces a new Surface.
type Surface struct {
	buf *gg.ImageBuf
}

// newSurface freezes the current pixels of dc into a Surface.
func newSurface(dc *gg.Context) *Surface {
	_ = dc.FlushGPU() // pending accelerated shapes must land before readback
	return &Surface{buf: gg.ImageBufFromImage(dc.Image())}
}

// Width returns the surface width in device pixels.
func (s *Surface) Width() int { return s.buf.Width() }

// Height returns the surface height in device pixels.
func (s *Surface) Height() int { return s.buf.Height() }

// ByteSize returns the memory held by the pixel data.
func (s *Surface) ByteSize() int { return s.buf.ByteSize() }

// Image returns a copy of the surface as a standard image.
func (s *Surface) Image() image.Image { return s.buf.ToStdImage() }

// blit copies s onto dc with its top-left corner at (x, y) in device
// pixels, ignoring dc's current transform.
func (s *Surface) blit(dc *gg.Context, x, y int) {
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.DrawImageEx(s.buf, gg.DrawImageOptions{
		X:             float64(x),
		Y:             float64(y),
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}
