// Package batch orchestrates the processing of a queue of images. One image
// is in flight at a time so peak memory stays bounded for very large inputs;
// this is a deliberate backpressure policy, not missing parallelism.
package batch

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"sync"

	"github.com/framr/framr/internal/compositor"
	"github.com/framr/framr/internal/geometry"
	"github.com/framr/framr/internal/image"
	"github.com/framr/framr/internal/logger"
	"github.com/framr/framr/internal/queue"
)

// Errors
var (
	ErrBatchRunning = errors.New("a batch is already running")
)

// State is the orchestrator state
type State int

const (
	// Idle means no batch is running. Idle is both the initial and the
	// terminal state.
	Idle State = iota
	// Running means a batch is being processed
	Running
)

var (
	processedItems = expvar.NewInt("counter_batch_processed_items")
	failedItems    = expvar.NewInt("counter_batch_failed_items")
)

// Config holds the settings applied to every item of a batch run
type Config struct {
	Border  geometry.BorderSpec
	Resize  geometry.ResizeSpec
	Format  image.Format
	Quality int
}

// ItemDoneFunc is called after an item has been processed successfully
type ItemDoneFunc func(itemID string, result *compositor.Result)

// ItemErrorFunc is called after an item has failed
type ItemErrorFunc func(itemID string, message string)

// Orchestrator processes batches of images on a single background worker
type Orchestrator struct {
	log     *logger.Logger
	decoder image.Decoder
	queue   *queue.Queue

	mutex     sync.Mutex
	state     State
	completed int
	total     int
	progress  float64
	cancelled bool
}

// New creates a new Orchestrator and starts its background worker.
// The worker runs until the given context is cancelled.
func New(ctx context.Context, log *logger.Logger, codec image.Codec) *Orchestrator {
	comp := compositor.New(codec)

	workerQueue := queue.New(ctx, 1, func(ctx context.Context, data interface{}, report func(int)) (interface{}, error) {
		task, ok := data.(*image.Task)
		if !ok {
			return nil, fmt.Errorf("invalid task")
		}

		return comp.Process(ctx, task, report)
	})

	go workerQueue.Run()

	return &Orchestrator{
		log:     log,
		decoder: codec,
		queue:   workerQueue,
	}
}

// Run processes the given items in submission order and returns the results
// of the items that succeeded. Per-item failures are reported through
// onItemError and never abort the rest of the batch. Configuration errors are
// returned before any item is dispatched. An empty item list is a no-op.
func (o *Orchestrator) Run(ctx context.Context, items []*Item, config Config, onItemDone ItemDoneFunc, onItemError ItemErrorFunc) ([]*compositor.Result, error) {
	if len(items) == 0 {
		return nil, nil
	}

	// Surface configuration errors before any work is dispatched
	for _, item := range items {
		if err := compositor.Validate(item.Width, item.Height, config.Border, config.Resize); err != nil {
			return nil, fmt.Errorf("%s: %w", item.FileName, err)
		}
	}

	if err := o.start(len(items)); err != nil {
		return nil, err
	}
	defer o.finish()

	o.log.Infof("processing batch of %d images", len(items))

	results := make([]*compositor.Result, 0, len(items))

	for _, item := range items {
		// Cancellation takes effect at item boundaries only
		if o.isCancelled() {
			o.log.Infof("batch cancelled after %d of %d images", len(results), o.total)
			break
		}

		item.Status = Processing

		result, err := o.processItem(ctx, item, config)
		if err != nil {
			// The run context being torn down mid-item is not an item
			// failure, the item stays eligible for a later run
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, queue.ErrShutdown) {
				item.Status = Pending
				o.log.Infof("batch interrupted: %s", err)
				break
			}

			item.Status = Failed
			item.Err = err.Error()
			failedItems.Add(1)
			o.log.Errorw("error processing image",
				"file", item.FileName,
				"error", err,
			)

			if onItemError != nil {
				onItemError(item.ID, err.Error())
			}

			o.itemSettled()
			continue
		}

		item.Status = Done
		item.Result = result
		// A done item is never re-run, its source bytes can be reclaimed now.
		// Pending and failed items keep theirs so a later run can pick them up.
		item.Data = nil
		results = append(results, result)
		processedItems.Add(1)

		if onItemDone != nil {
			onItemDone(item.ID, result)
		}

		o.itemSettled()
	}

	return results, nil
}

// processItem decodes a single item and dispatches it to the worker,
// transferring ownership of the decoded pixel buffer
func (o *Orchestrator) processItem(ctx context.Context, item *Item, config Config) (*compositor.Result, error) {
	buffer, err := o.decoder.Decode(ctx, item.Data)
	if err != nil {
		return nil, err
	}

	task := image.NewTask(item.ID, item.FileName, buffer).
		WithBorder(config.Border).
		WithResize(config.Resize).
		OutputAs(config.Format, config.Quality)

	result, err := o.queue.Process(ctx, task, o.itemProgress)
	if err != nil {
		return nil, err
	}

	processed, ok := result.(*compositor.Result)
	if !ok {
		return nil, fmt.Errorf("error getting result")
	}

	return processed, nil
}

// Cancel requests cancellation of the running batch. The item currently in
// flight finishes first; the request is observed at the next item boundary.
func (o *Orchestrator) Cancel() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.state == Running {
		o.cancelled = true
	}
}

// State returns the current orchestrator state
func (o *Orchestrator) State() State {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return o.state
}

// Progress returns the aggregate batch progress as a 0-100 percentage
func (o *Orchestrator) Progress() float64 {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return o.progress
}

func (o *Orchestrator) start(total int) error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.state == Running {
		return ErrBatchRunning
	}

	o.state = Running
	o.completed = 0
	o.total = total
	o.progress = 0
	o.cancelled = false

	return nil
}

func (o *Orchestrator) finish() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.state = Idle
	o.progress = 100
}

func (o *Orchestrator) isCancelled() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return o.cancelled
}

// itemProgress folds the in-flight item's own 0-100 progress into the
// aggregate percentage
func (o *Orchestrator) itemProgress(progress int) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.progress = (float64(o.completed) + float64(progress)/100) / float64(o.total) * 100
}

// itemSettled advances the aggregate progress past a settled item
func (o *Orchestrator) itemSettled() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.completed++
	o.progress = float64(o.completed) / float64(o.total) * 100
}
