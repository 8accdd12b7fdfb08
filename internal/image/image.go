// Package image defines the decode and encode capabilities consumed by the
// processing pipeline, and the pixel buffer handle passed between them.
package image

import (
	"context"
	"errors"
	stdimage "image"
)

// Errors
var (
	ErrDecodeFailed = errors.New("decode failed")
	ErrEncodeFailed = errors.New("encode failed")
)

// Decoder decodes encoded image bytes into a pixel buffer
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*Buffer, error)
}

// Encoder encodes a pixel buffer into the given format. The quality is an
// integer between 1 and 100 and is ignored by lossless formats.
type Encoder interface {
	Encode(ctx context.Context, pixels *stdimage.NRGBA, format Format, quality int) ([]byte, error)
}

// Codec combines the decode and encode capabilities
type Codec interface {
	Decoder
	Encoder
}
