// Package mock implements a mock image codec for testing
package mock

import (
	"context"
	stdimage "image"

	"github.com/framr/framr/internal/image"
)

// Codec implements a mock image codec. Zero-valued it decodes every input
// to a fixed-size buffer and encodes to a placeholder blob; the error fields
// force the corresponding capability to fail.
type Codec struct {
	Width     int
	Height    int
	DecodeErr error
	EncodeErr error
}

// Decode returns a fixed-size pixel buffer, ignoring the input bytes
func (c *Codec) Decode(ctx context.Context, data []byte) (*image.Buffer, error) {
	if c.DecodeErr != nil {
		return nil, c.DecodeErr
	}

	width, height := c.Width, c.Height
	if width == 0 {
		width = 8
	}
	if height == 0 {
		height = 8
	}

	return image.NewBuffer(stdimage.NewNRGBA(stdimage.Rect(0, 0, width, height))), nil
}

// Encode returns a placeholder blob
func (c *Codec) Encode(ctx context.Context, pixels *stdimage.NRGBA, format image.Format, quality int) ([]byte, error) {
	if c.EncodeErr != nil {
		return nil, c.EncodeErr
	}

	return []byte("encoded"), nil
}
