// Package compositor turns one decoded source image into one bordered,
// encoded output blob.
package compositor

import (
	"context"
	"fmt"
	stdimage "image"
	stddraw "image/draw"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/framr/framr/internal/geometry"
	"github.com/framr/framr/internal/hexcolor"
	"github.com/framr/framr/internal/image"
)

// defaultColor is used when a task carries no border color
const defaultColor = "#FFFFFF"

// Result is the output of one successfully processed image
type Result struct {
	ItemID   string
	FileName string
	Data     []byte
}

// Compositor renders bordered images and encodes them through the given encoder
type Compositor struct {
	encoder image.Encoder
}

// New returns a new Compositor instance
func New(encoder image.Encoder) *Compositor {
	return &Compositor{
		encoder: encoder,
	}
}

// Validate checks that the task configuration yields a drawable output for
// an image of the given size, without doing any pixel work. Callers run this
// before dispatching so configuration errors surface up front.
func Validate(width, height int, border geometry.BorderSpec, resize geometry.ResizeSpec) error {
	if _, err := geometry.OutputDimensions(width, height, resize); err != nil {
		return err
	}

	if border.Color != "" && !hexcolor.IsValid(border.Color) {
		return fmt.Errorf("%w: %q", hexcolor.ErrInvalidColor, border.Color)
	}

	return nil
}

// Process takes ownership of the task's pixel buffer, resizes the image,
// paints the border around it, and encodes the composited surface.
// Progress is reported on the given callback as a 0-100 percentage.
func (c *Compositor) Process(ctx context.Context, task *image.Task, report func(progress int)) (*Result, error) {
	pixels, err := task.Pixels.Detach()
	if err != nil {
		return nil, err
	}

	report(10)

	dimensions, err := geometry.OutputDimensions(task.Pixels.Width(), task.Pixels.Height(), task.Resize)
	if err != nil {
		return nil, err
	}

	resized := resample(pixels, dimensions)
	report(45)

	// Border widths are relative to the resized image, not the original
	insets := geometry.BorderInsets(dimensions.Width, dimensions.Height, task.Border)

	fillColor := task.Border.Color
	if fillColor == "" {
		fillColor = defaultColor
	}

	fill, err := hexcolor.Parse(fillColor)
	if err != nil {
		return nil, err
	}

	canvas := stdimage.NewNRGBA(stdimage.Rect(0, 0,
		dimensions.Width+insets.Left+insets.Right,
		dimensions.Height+insets.Top+insets.Bottom,
	))
	stddraw.Draw(canvas, canvas.Bounds(), &stdimage.Uniform{C: fill}, stdimage.Point{}, stddraw.Src)

	target := stdimage.Rect(insets.Left, insets.Top, insets.Left+dimensions.Width, insets.Top+dimensions.Height)
	stddraw.Draw(canvas, target, resized, resized.Bounds().Min, stddraw.Src)

	report(75)

	format := resolveFormat(task.Format, task.FileName)

	data, err := c.encoder.Encode(ctx, canvas, format, task.Quality)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: encoder returned no data", image.ErrEncodeFailed)
	}

	report(100)

	return &Result{
		ItemID:   task.ItemID,
		FileName: OutputFileName(task.FileName, format),
		Data:     data,
	}, nil
}

// resample scales the image to the target dimensions using Catmull-Rom
// interpolation. The source is returned untouched when no scaling is needed.
func resample(pixels *stdimage.NRGBA, dimensions geometry.Dimensions) *stdimage.NRGBA {
	bounds := pixels.Bounds()
	if bounds.Dx() == dimensions.Width && bounds.Dy() == dimensions.Height {
		return pixels
	}

	resized := stdimage.NewNRGBA(stdimage.Rect(0, 0, dimensions.Width, dimensions.Height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), pixels, bounds, draw.Src, nil)

	return resized
}

// resolveFormat maps SameAsInput to the format implied by the source filename
func resolveFormat(format image.Format, fileName string) image.Format {
	if format != image.SameAsInput {
		return format
	}

	return image.FormatFromExtension(filepath.Ext(fileName))
}

// OutputFileName derives the output filename for a source filename and a
// resolved output format
func OutputFileName(fileName string, format image.Format) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	return fmt.Sprintf("%s_bordered.%s", base, format.Extension())
}
