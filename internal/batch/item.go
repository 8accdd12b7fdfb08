package batch

import (
	"github.com/google/uuid"

	"github.com/framr/framr/internal/compositor"
)

// Status is the lifecycle state of a queued item
type Status int

const (
	// Pending means the item has not been processed yet
	Pending Status = iota
	// Processing means the item has been dispatched to the worker
	Processing
	// Done means the item processed successfully
	Done
	// Failed means the item could not be processed
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Processing:
		return "processing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// Item is one queued source image. The orchestrator owns all status
// transitions; Result is set only on Done and Err only on Failed. Data is
// dropped once the item reaches Done, as it can no longer be re-run.
type Item struct {
	ID       string
	FileName string
	Data     []byte
	Width    int
	Height   int
	Status   Status
	Result   *compositor.Result
	Err      string
}

// NewItem creates a new queue item for a source image
func NewItem(fileName string, data []byte, width, height int) *Item {
	return &Item{
		ID:       uuid.NewString(),
		FileName: fileName,
		Data:     data,
		Width:    width,
		Height:   height,
		Status:   Pending,
	}
}

// Release drops the item's references to the source bytes and any output
// blob so their memory can be reclaimed as soon as the item leaves the queue
func (i *Item) Release() {
	i.Data = nil
	i.Result = nil
}
