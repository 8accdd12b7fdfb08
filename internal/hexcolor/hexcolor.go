// Package hexcolor parses and normalizes hex color strings.
package hexcolor

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

// Errors
var (
	ErrInvalidColor = errors.New("invalid hex color")
)

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsValid reports whether s is a 3 or 6 digit hex color, with or without a leading #
func IsValid(s string) bool {
	return hexPattern.MatchString(s)
}

// Normalize expands 3-digit shorthand to 6 digits, uppercases the value,
// and ensures a leading #
func Normalize(s string) (string, error) {
	if !IsValid(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	digits := strings.ToUpper(strings.TrimPrefix(s, "#"))

	if len(digits) == 3 {
		digits = strings.Repeat(string(digits[0]), 2) +
			strings.Repeat(string(digits[1]), 2) +
			strings.Repeat(string(digits[2]), 2)
	}

	return "#" + digits, nil
}

// Parse converts a hex color to its RGBA value
func Parse(s string) (color.NRGBA, error) {
	normalized, err := Normalize(s)
	if err != nil {
		return color.NRGBA{}, err
	}

	value, err := strconv.ParseUint(normalized[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	return color.NRGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}

// Contrast returns black or white, whichever reads better against the given
// color, using the perceptual luminance weights for each channel
func Contrast(s string) (string, error) {
	rgba, err := Parse(s)
	if err != nil {
		return "", err
	}

	luminance := (0.299*float64(rgba.R) + 0.587*float64(rgba.G) + 0.114*float64(rgba.B)) / 255

	if luminance > 0.5 {
		return "#000000", nil
	}

	return "#FFFFFF", nil
}
