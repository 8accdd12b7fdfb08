// Package queue implements the background execution context that processes
// image tasks. Workers communicate with callers by message passing only: each
// Process call owns a scoped message channel carrying interleaved progress
// messages and exactly one terminal result or error message, released when
// the call settles.
package queue

import (
	"context"
	"errors"
)

// Errors
var (
	ErrShutdown = errors.New("queue has been shutdown")
)

// Handler processes a single job. Progress between 0 and 100 may be reported
// on the given callback while the job runs.
type Handler func(ctx context.Context, data interface{}, report func(progress int)) (interface{}, error)

// Queue is a worker queue with a fixed amount of workers
type Queue struct {
	ctx     context.Context
	queue   chan job
	workers int
	handler Handler
}

type messageKind int

const (
	progressMessage messageKind = iota
	resultMessage
	errorMessage
)

// message is the tagged union exchanged between a worker and a waiting
// Process call
type message struct {
	kind     messageKind
	progress int
	result   interface{}
	err      error
}

type job struct {
	ctx      context.Context
	data     interface{}
	messages chan message
}

// New creates a new Queue with the specified amount of workers.
// The queue runs until the given context is cancelled.
func New(ctx context.Context, workers int, handler Handler) *Queue {
	return &Queue{
		ctx:     ctx,
		queue:   make(chan job),
		workers: workers,
		handler: handler,
	}
}

// Run starts the workers and blocks until the queue context is cancelled
func (q *Queue) Run() {
	for i := 0; i < q.workers; i++ {
		go q.worker()
	}

	<-q.ctx.Done()
}

func (q *Queue) worker() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.queue:
			result, err := q.handler(job.ctx, job.data, func(progress int) {
				job.send(message{kind: progressMessage, progress: progress})
			})

			if err != nil {
				job.send(message{kind: errorMessage, err: err})
				continue
			}

			job.send(message{kind: resultMessage, result: result})
		}
	}
}

// send delivers a message unless the job has been abandoned
func (j job) send(m message) {
	select {
	case j.messages <- m:
	case <-j.ctx.Done():
	}
}

// Process adds a job to the queue, consumes its message stream until the
// terminal message arrives, and returns the result. Progress messages are
// forwarded to the onProgress callback when one is given.
func (q *Queue) Process(ctx context.Context, data interface{}, onProgress func(progress int)) (interface{}, error) {
	if q.ctx.Err() != nil {
		return nil, ErrShutdown
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	messages := make(chan message)

	select {
	case q.queue <- job{ctx: ctx, data: data, messages: messages}:
	case <-q.ctx.Done():
		return nil, ErrShutdown
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	for {
		select {
		case m := <-messages:
			switch m.kind {
			case progressMessage:
				if onProgress != nil {
					onProgress(m.progress)
				}
			case errorMessage:
				return nil, m.err
			default:
				return m.result, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
