package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Errors
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Unit determines how a border or resize magnitude is interpreted
type Unit int

const (
	// Pixels means the magnitude is an absolute pixel count
	Pixels Unit = iota
	// Percent means the magnitude is relative to the image dimensions
	Percent
)

// BorderSpec describes the border to draw around an image.
// The width is always interpreted against the post-resize dimensions.
type BorderSpec struct {
	Width       float64
	Unit        Unit
	Color       string // normalized hex color, consumed by the compositor
	AspectAware bool
}

// ResizeSpec describes an optional resize applied before the border.
// A width or height of zero means the dimension was not given.
type ResizeSpec struct {
	Enabled        bool
	Width          float64
	Height         float64
	Unit           Unit
	MaintainAspect bool
}

// Insets is the border thickness for each edge of the output canvas
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Dimensions is an image size in pixels
type Dimensions struct {
	Width  int
	Height int
}

// BorderInsets computes the per-edge border thickness for an image of the
// given size. Percent widths are relative to the shorter image dimension.
// When the border is aspect-aware, the shorter dimension keeps the base
// magnitude and the longer dimension scales by the aspect ratio, each edge
// rounded independently. Insets are never negative.
func BorderInsets(width, height int, border BorderSpec) Insets {
	magnitude := border.Width
	if border.Unit == Percent {
		base := math.Min(float64(width), float64(height))
		magnitude = base * border.Width / 100
	}

	if magnitude < 0 {
		magnitude = 0
	}

	uniform := int(math.Round(magnitude))

	if !border.AspectAware || width == height || width == 0 || height == 0 {
		return Insets{
			Top:    uniform,
			Right:  uniform,
			Bottom: uniform,
			Left:   uniform,
		}
	}

	aspectRatio := float64(width) / float64(height)

	if aspectRatio > 1 {
		// Wide image, scale the left/right insets
		scaled := int(math.Round(magnitude * aspectRatio))
		return Insets{
			Top:    uniform,
			Right:  scaled,
			Bottom: uniform,
			Left:   scaled,
		}
	}

	// Tall image, scale the top/bottom insets
	scaled := int(math.Round(magnitude / aspectRatio))
	return Insets{
		Top:    scaled,
		Right:  uniform,
		Bottom: scaled,
		Left:   uniform,
	}
}

// OutputDimensions computes the post-resize image size. Percent targets are
// resolved against the original dimensions. When MaintainAspect is set and
// both targets are given, the smaller of the two implied scale factors wins
// so the result fits inside the requested box. A configuration implying a
// non-positive output dimension returns ErrInvalidGeometry rather than
// clamping, so a broken configuration surfaces instead of being masked.
func OutputDimensions(origWidth, origHeight int, resize ResizeSpec) (Dimensions, error) {
	if !resize.Enabled {
		return Dimensions{Width: origWidth, Height: origHeight}, nil
	}

	if origWidth < 1 || origHeight < 1 {
		return Dimensions{}, fmt.Errorf("%w: cannot resize a %dx%d image", ErrInvalidGeometry, origWidth, origHeight)
	}

	targetWidth := resize.Width
	targetHeight := resize.Height
	if resize.Unit == Percent {
		targetWidth = float64(origWidth) * resize.Width / 100
		targetHeight = float64(origHeight) * resize.Height / 100
	}

	width := float64(origWidth)
	height := float64(origHeight)

	switch {
	case resize.MaintainAspect && resize.Width > 0 && resize.Height > 0:
		// Fit inside the requested box
		scale := math.Min(targetWidth/width, targetHeight/height)
		width = width * scale
		height = height * scale
	case resize.MaintainAspect && resize.Width > 0:
		height = targetWidth * height / width
		width = targetWidth
	case resize.MaintainAspect && resize.Height > 0:
		width = targetHeight * width / height
		height = targetHeight
	case resize.MaintainAspect:
		// Neither dimension given, keep the originals
	default:
		if resize.Width > 0 {
			width = targetWidth
		}
		if resize.Height > 0 {
			height = targetHeight
		}
	}

	dimensions := Dimensions{
		Width:  int(math.Round(width)),
		Height: int(math.Round(height)),
	}

	if dimensions.Width < 1 || dimensions.Height < 1 {
		return Dimensions{}, fmt.Errorf("%w: resize of %dx%d yields %dx%d", ErrInvalidGeometry, origWidth, origHeight, dimensions.Width, dimensions.Height)
	}

	return dimensions, nil
}
