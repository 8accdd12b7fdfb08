package image

import (
	"errors"
	stdimage "image"
)

// Errors
var (
	ErrBufferDetached = errors.New("pixel buffer has been transferred")
)

// Buffer is a handle to a decoded pixel buffer. Ownership is explicit:
// Detach hands the pixels to the caller and invalidates the handle, so a
// large buffer is never reachable from two places at once.
type Buffer struct {
	pixels   *stdimage.NRGBA
	width    int
	height   int
	detached bool
}

// NewBuffer wraps a decoded pixel buffer in a handle
func NewBuffer(pixels *stdimage.NRGBA) *Buffer {
	bounds := pixels.Bounds()

	return &Buffer{
		pixels: pixels,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
}

// Width returns the pixel width of the buffer
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the pixel height of the buffer
func (b *Buffer) Height() int {
	return b.height
}

// Detach transfers ownership of the pixels to the caller. The handle is
// invalidated and any further Detach returns ErrBufferDetached.
func (b *Buffer) Detach() (*stdimage.NRGBA, error) {
	if b.detached {
		return nil, ErrBufferDetached
	}

	pixels := b.pixels
	b.pixels = nil
	b.detached = true

	return pixels, nil
}
