package image

import "github.com/framr/framr/internal/geometry"

// Task is an image bordering task. The pixel buffer is owned by the task
// once it is dispatched to the worker.
type Task struct {
	ItemID   string
	FileName string
	Pixels   *Buffer
	Border   geometry.BorderSpec
	Resize   geometry.ResizeSpec
	Format   Format
	Quality  int
}

// NewTask creates a new image bordering task
func NewTask(itemID string, fileName string, pixels *Buffer) *Task {
	return &Task{
		ItemID:   itemID,
		FileName: fileName,
		Pixels:   pixels,
		Quality:  90,
	}
}

// WithBorder sets the border to draw
func (t *Task) WithBorder(border geometry.BorderSpec) *Task {
	t.Border = border
	return t
}

// WithResize resizes the image before the border is applied
func (t *Task) WithResize(resize geometry.ResizeSpec) *Task {
	t.Resize = resize
	return t
}

// OutputAs sets the output format and quality
func (t *Task) OutputAs(format Format, quality int) *Task {
	t.Format = format
	t.Quality = quality
	return t
}
