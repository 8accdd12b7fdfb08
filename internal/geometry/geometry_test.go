package geometry_test

import (
	"errors"
	"testing"

	"github.com/framr/framr/internal/geometry"
)

func TestBorderInsets(t *testing.T) {
	t.Run("Percent width uses the shorter dimension as base", func(t *testing.T) {
		insets := geometry.BorderInsets(4000, 3000, geometry.BorderSpec{Width: 5, Unit: geometry.Percent})
		expected := geometry.Insets{Top: 150, Right: 150, Bottom: 150, Left: 150}
		if insets != expected {
			t.Errorf("got %+v, expected %+v", insets, expected)
		}
	})

	t.Run("Pixel width is used as-is", func(t *testing.T) {
		insets := geometry.BorderInsets(800, 600, geometry.BorderSpec{Width: 24, Unit: geometry.Pixels})
		expected := geometry.Insets{Top: 24, Right: 24, Bottom: 24, Left: 24}
		if insets != expected {
			t.Errorf("got %+v, expected %+v", insets, expected)
		}
	})

	t.Run("Aspect-aware scales left/right for a wide image", func(t *testing.T) {
		insets := geometry.BorderInsets(4000, 2000, geometry.BorderSpec{Width: 100, Unit: geometry.Pixels, AspectAware: true})
		expected := geometry.Insets{Top: 100, Right: 200, Bottom: 100, Left: 200}
		if insets != expected {
			t.Errorf("got %+v, expected %+v", insets, expected)
		}
	})

	t.Run("Aspect-aware scales top/bottom for a tall image", func(t *testing.T) {
		insets := geometry.BorderInsets(2000, 4000, geometry.BorderSpec{Width: 100, Unit: geometry.Pixels, AspectAware: true})
		expected := geometry.Insets{Top: 200, Right: 100, Bottom: 200, Left: 100}
		if insets != expected {
			t.Errorf("got %+v, expected %+v", insets, expected)
		}
	})

	t.Run("Aspect-aware falls back to uniform insets for a square image", func(t *testing.T) {
		insets := geometry.BorderInsets(1000, 1000, geometry.BorderSpec{Width: 50, Unit: geometry.Pixels, AspectAware: true})
		expected := geometry.Insets{Top: 50, Right: 50, Bottom: 50, Left: 50}
		if insets != expected {
			t.Errorf("got %+v, expected %+v", insets, expected)
		}
	})

	t.Run("Zero-sized image yields zero percent insets", func(t *testing.T) {
		insets := geometry.BorderInsets(0, 600, geometry.BorderSpec{Width: 10, Unit: geometry.Percent, AspectAware: true})
		if insets != (geometry.Insets{}) {
			t.Errorf("got %+v, expected zero insets", insets)
		}
	})

	t.Run("Negative width is treated as no border", func(t *testing.T) {
		insets := geometry.BorderInsets(800, 600, geometry.BorderSpec{Width: -5, Unit: geometry.Pixels})
		if insets != (geometry.Insets{}) {
			t.Errorf("got %+v, expected zero insets", insets)
		}
	})

	t.Run("Insets are never negative for percent widths", func(t *testing.T) {
		for _, width := range []float64{0, 1, 33.3, 50, 100} {
			insets := geometry.BorderInsets(1920, 1080, geometry.BorderSpec{Width: width, Unit: geometry.Percent})
			if insets.Top < 0 || insets.Right < 0 || insets.Bottom < 0 || insets.Left < 0 {
				t.Errorf("negative inset for width %f: %+v", width, insets)
			}

			if insets.Top != insets.Right || insets.Right != insets.Bottom || insets.Bottom != insets.Left {
				t.Errorf("non-uniform insets for width %f: %+v", width, insets)
			}
		}
	})
}

func TestOutputDimensions(t *testing.T) {
	t.Run("Disabled resize echoes the original dimensions", func(t *testing.T) {
		for _, size := range []geometry.Dimensions{{4000, 3000}, {1, 1}, {0, 0}} {
			dimensions, err := geometry.OutputDimensions(size.Width, size.Height, geometry.ResizeSpec{})
			if err != nil {
				t.Fatal(err)
			}

			if dimensions != size {
				t.Errorf("got %+v, expected %+v", dimensions, size)
			}
		}
	})

	t.Run("Derives the missing dimension from the aspect ratio", func(t *testing.T) {
		dimensions, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled:        true,
			Width:          1000,
			MaintainAspect: true,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := geometry.Dimensions{Width: 1000, Height: 750}
		if dimensions != expected {
			t.Errorf("got %+v, expected %+v", dimensions, expected)
		}
	})

	t.Run("Fits inside the box when both dimensions are given", func(t *testing.T) {
		dimensions, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled:        true,
			Width:          2000,
			Height:         1000,
			MaintainAspect: true,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := geometry.Dimensions{Width: 1333, Height: 1000}
		if dimensions != expected {
			t.Errorf("got %+v, expected %+v", dimensions, expected)
		}
	})

	t.Run("Percent targets are relative to the original dimensions", func(t *testing.T) {
		dimensions, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled: true,
			Width:   50,
			Height:  50,
			Unit:    geometry.Percent,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := geometry.Dimensions{Width: 2000, Height: 1500}
		if dimensions != expected {
			t.Errorf("got %+v, expected %+v", dimensions, expected)
		}
	})

	t.Run("Missing dimensions default to the original without aspect handling", func(t *testing.T) {
		dimensions, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled: true,
			Width:   1000,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := geometry.Dimensions{Width: 1000, Height: 3000}
		if dimensions != expected {
			t.Errorf("got %+v, expected %+v", dimensions, expected)
		}
	})

	t.Run("Enabled resize with no targets keeps the originals", func(t *testing.T) {
		dimensions, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled:        true,
			MaintainAspect: true,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := geometry.Dimensions{Width: 4000, Height: 3000}
		if dimensions != expected {
			t.Errorf("got %+v, expected %+v", dimensions, expected)
		}
	})

	t.Run("Non-positive output is rejected", func(t *testing.T) {
		_, err := geometry.OutputDimensions(4000, 3000, geometry.ResizeSpec{
			Enabled: true,
			Width:   0.001,
			Unit:    geometry.Percent,
		})
		if !errors.Is(err, geometry.ErrInvalidGeometry) {
			t.Errorf("got %v, expected ErrInvalidGeometry", err)
		}
	})

	t.Run("Resizing a zero-sized image is rejected", func(t *testing.T) {
		_, err := geometry.OutputDimensions(0, 0, geometry.ResizeSpec{
			Enabled: true,
			Width:   100,
		})
		if !errors.Is(err, geometry.ErrInvalidGeometry) {
			t.Errorf("got %v, expected ErrInvalidGeometry", err)
		}
	})
}
