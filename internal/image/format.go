package image

import "strings"

// Format is the image format to output to
type Format int

const (
	// SameAsInput outputs in the format of the source image
	SameAsInput Format = iota
	// JPEG represents the JPEG format
	JPEG
	// PNG represents the PNG format
	PNG
	// WebP represents the WebP format
	WebP
)

// ParseFormat returns the format for a user-facing format name
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "same", "original":
		return SameAsInput, true
	case "jpeg", "jpg":
		return JPEG, true
	case "png":
		return PNG, true
	case "webp":
		return WebP, true
	}

	return SameAsInput, false
}

// FormatFromExtension maps a filename extension to an output format,
// defaulting to PNG for extensions without a matching encoder
func FormatFromExtension(extension string) Format {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "jpg", "jpeg":
		return JPEG
	case "webp":
		return WebP
	default:
		return PNG
	}
}

// Extension returns the canonical filename extension for the format.
// JPEG is always jpg, never jpeg.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return "jpg"
	case WebP:
		return "webp"
	default:
		return "png"
	}
}

// MimeType returns the mime type for the format
func (f Format) MimeType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case WebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

// Lossy reports whether the quality setting applies to the format
func (f Format) Lossy() bool {
	return f == JPEG || f == WebP
}

func (f Format) String() string {
	switch f {
	case SameAsInput:
		return "same as input"
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	case WebP:
		return "webp"
	}

	return "unknown"
}
