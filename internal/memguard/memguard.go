// Package memguard estimates the memory footprint of a batch before it runs.
// The estimate is advisory only, it never blocks processing.
package memguard

import "github.com/framr/framr/internal/geometry"

const (
	bytesPerPixel = 4
	// A decoded buffer plus one working copy per image. The multiplier is
	// deliberately coarse and not format-aware; the warning threshold below
	// is calibrated against it.
	copiesPerImage = 2

	// WarningThreshold is the footprint above which callers should surface
	// a warning and suggest smaller batches
	WarningThreshold = 500 << 20 // 500 MiB
)

// EstimateFootprint returns the projected pixel-buffer footprint in bytes
// for a set of queued images
func EstimateFootprint(images []geometry.Dimensions) int64 {
	var total int64
	for _, image := range images {
		total += int64(image.Width) * int64(image.Height) * bytesPerPixel * copiesPerImage
	}

	return total
}

// ExceedsWarningThreshold reports whether the projected footprint of the
// queued images crosses the warning threshold
func ExceedsWarningThreshold(images []geometry.Dimensions) bool {
	return EstimateFootprint(images) > WarningThreshold
}
