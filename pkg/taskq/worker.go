package taskq

import (
	"context"
	"sync"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/metrics"
	"github.com/aarifhsn/nexthire-backend/pkg/retry"
)

// Handler processes one task kind
type Handler func(ctx context.Context, task Task) error

// Worker runs a pool of goroutines that drain a Queue
type Worker struct {
	queue       Queue
	handlers    map[string]Handler
	workers     int
	maxAttempts int
	backoff     *retry.Config
	pollTimeout time.Duration
	promoteTick time.Duration
	wg          sync.WaitGroup
}

func NewWorker(queue Queue, workers int) *Worker {
	if workers < 1 {
		workers = 1
	}
	return &Worker{
		queue:       queue,
		handlers:    make(map[string]Handler),
		workers:     workers,
		maxAttempts: 3,
		backoff: &retry.Config{
			InitialBackoff:    10 * time.Second,
			MaxBackoff:        5 * time.Minute,
			BackoffMultiplier: 3,
		},
		pollTimeout: 5 * time.Second,
		promoteTick: 15 * time.Second,
	}
}

// Handle registers the handler for a task kind. Call before Start.
func (w *Worker) Handle(kind string, h Handler) {
	w.handlers[kind] = h
}

// Start launches the pool and the delayed-task mover. It returns immediately.
func (w *Worker) Start(ctx context.Context) {
	logx.Infof("Starting %d task workers", w.workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayedTasks(ctx)
	}()

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processTasks(ctx, id)
		}(i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) processTasks(ctx context.Context, workerID int) {
	for {
		if ctx.Err() != nil {
			logx.Infof("Worker %d stopping", workerID)
			return
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() == nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				time.Sleep(time.Second)
			}
			continue
		}
		if task == nil {
			continue
		}

		w.Process(ctx, *task)
	}
}

// Process runs the handler for one task and reschedules it on failure
func (w *Worker) Process(ctx context.Context, task Task) {
	h, ok := w.handlers[task.Kind]
	if !ok {
		logx.Warnf("No handler for task kind %q, dropping %s", task.Kind, task.ID)
		metrics.ObserveTask(task.Kind, "dropped")
		return
	}

	err := h(ctx, task)
	if err == nil {
		metrics.ObserveTask(task.Kind, "ok")
		return
	}

	task.Attempt++
	if task.Attempt >= w.maxAttempts {
		logx.Errorf("Task %s (%s) failed permanently after %d attempts: %v", task.ID, task.Kind, task.Attempt, err)
		metrics.ObserveTask(task.Kind, "failed")
		return
	}

	delay := retry.Backoff(task.Attempt-1, w.backoff)
	logx.Warnf("Task %s (%s) failed, retrying in %s: %v", task.ID, task.Kind, delay, err)
	metrics.ObserveTask(task.Kind, "retry")
	if err := w.queue.EnqueueDelayed(ctx, task, delay); err != nil {
		logx.Errorf("Task %s could not be rescheduled: %v", task.ID, err)
	}
}

func (w *Worker) moveDelayedTasks(ctx context.Context) {
	ticker := time.NewTicker(w.promoteTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			moved, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed tasks: %v", err)
				continue
			}
			if moved > 0 {
				logx.Infof("Moved %d delayed tasks to ready queue", moved)
			}
		}
	}
}
