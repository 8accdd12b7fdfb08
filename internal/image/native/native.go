// Package native implements the image codec in pure Go using the standard
// library codecs plus the golang.org/x/image decoders.
package native

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/framr/framr/internal/image"

	// Registered decoders beyond JPEG and PNG
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec implements a pure-Go image codec
type Codec struct {
}

// New returns a new Codec instance
func New() *Codec {
	return &Codec{}
}

// Decode decodes encoded image bytes into a pixel buffer
func (c *Codec) Decode(ctx context.Context, data []byte) (*image.Buffer, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	decoded, _, err := stdimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", image.ErrDecodeFailed, err)
	}

	// Normalize to NRGBA so the compositor works on a single pixel layout
	if pixels, ok := decoded.(*stdimage.NRGBA); ok {
		return image.NewBuffer(pixels), nil
	}

	bounds := decoded.Bounds()
	pixels := stdimage.NewNRGBA(stdimage.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(pixels, pixels.Bounds(), decoded, bounds.Min, draw.Src)

	return image.NewBuffer(pixels), nil
}

// Probe returns the dimensions and format of encoded image bytes without
// decoding the pixel data
func (c *Codec) Probe(data []byte) (width int, height int, format string, err error) {
	config, format, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("%w: %s", image.ErrDecodeFailed, err)
	}

	return config.Width, config.Height, format, nil
}

// Encode encodes a pixel buffer into the given format
func (c *Codec) Encode(ctx context.Context, pixels *stdimage.NRGBA, format image.Format, quality int) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var buffer bytes.Buffer

	switch format {
	case image.JPEG:
		// Quality only applies to lossy output, lossless formats ignore it
		if quality < 1 || quality > 100 {
			return nil, fmt.Errorf("%w: quality %d is out of range", image.ErrEncodeFailed, quality)
		}

		if err := jpeg.Encode(&buffer, pixels, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("%w: %s", image.ErrEncodeFailed, err)
		}
	case image.PNG:
		if err := png.Encode(&buffer, pixels); err != nil {
			return nil, fmt.Errorf("%w: %s", image.ErrEncodeFailed, err)
		}
	case image.WebP:
		// golang.org/x/image only ships a webp decoder
		return nil, fmt.Errorf("%w: webp encoding is not supported by the native codec", image.ErrEncodeFailed)
	default:
		return nil, fmt.Errorf("%w: cannot encode to %s", image.ErrEncodeFailed, format)
	}

	return buffer.Bytes(), nil
}
