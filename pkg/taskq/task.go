package taskq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task is one unit of background work
type Task struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// NewTask encodes payload into a fresh task of the given kind
func NewTask(kind string, payload any) (Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return Task{
		ID:         uuid.NewString(),
		Kind:       kind,
		Payload:    data,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v
func (t Task) Decode(v any) error {
	if err := json.Unmarshal(t.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", t.Kind, err)
	}
	return nil
}

// Enqueuer is what producers depend on
type Enqueuer interface {
	Enqueue(ctx context.Context, task Task) error
}

// Queue is the full contract used by the worker
type Queue interface {
	Enqueuer

	// EnqueueDelayed schedules a task for later processing (for retries)
	EnqueueDelayed(ctx context.Context, task Task, delay time.Duration) error

	// Dequeue blocks up to timeout. A nil task with nil error means the queue was empty.
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)

	// MoveDelayedToReady promotes delayed tasks whose time has come
	MoveDelayedToReady(ctx context.Context) (int, error)
}
