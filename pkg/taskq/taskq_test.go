package taskq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

type assetPayload struct {
	Path string `json:"path"`
}

func TestRedisQueue_EnqueueDequeue(t *testing.T) {
	_, client := setupTestRedis(t)
	q := NewRedisQueue(client, "tasks")
	ctx := context.Background()

	task, err := NewTask("asset.delete", assetPayload{Path: "resumes/a.pdf"})
	require.NoError(t, err)
	require.NoError(t, q.Enqueue(ctx, task))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "asset.delete", got.Kind)

	var p assetPayload
	require.NoError(t, got.Decode(&p))
	assert.Equal(t, "resumes/a.pdf", p.Path)
}

func TestRedisQueue_FIFO(t *testing.T) {
	_, client := setupTestRedis(t)
	q := NewRedisQueue(client, "tasks")
	ctx := context.Background()

	first, _ := NewTask("k", 1)
	second, _ := NewTask("k", 2)
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestRedisQueue_MoveDelayedToReady(t *testing.T) {
	_, client := setupTestRedis(t)
	q := NewRedisQueue(client, "tasks")
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return base }

	task, _ := NewTask("job.embed", map[string]string{"job_id": "j1"})
	require.NoError(t, q.EnqueueDelayed(ctx, task, time.Minute))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved, "not due yet")

	q.now = func() time.Time { return base.Add(2 * time.Minute) }
	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats["ready_tasks"])
	assert.EqualValues(t, 0, stats["delayed_tasks"])
}

type fakeQueue struct {
	delayed []Task
	delays  []time.Duration
}

func (f *fakeQueue) Enqueue(context.Context, Task) error { return nil }
func (f *fakeQueue) EnqueueDelayed(_ context.Context, task Task, delay time.Duration) error {
	f.delayed = append(f.delayed, task)
	f.delays = append(f.delays, delay)
	return nil
}
func (f *fakeQueue) Dequeue(context.Context, time.Duration) (*Task, error) { return nil, nil }
func (f *fakeQueue) MoveDelayedToReady(context.Context) (int, error)      { return 0, nil }

func TestWorker_Process(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		attempt     int
		handlerErr  error
		wantDelayed int
	}{
		{name: "success", kind: "ok", attempt: 0},
		{name: "unknown kind dropped", kind: "nope", attempt: 0},
		{name: "first failure retried", kind: "ok", attempt: 0, handlerErr: errors.New("boom"), wantDelayed: 1},
		{name: "second failure retried", kind: "ok", attempt: 1, handlerErr: errors.New("boom"), wantDelayed: 1},
		{name: "third failure is final", kind: "ok", attempt: 2, handlerErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQueue{}
			w := NewWorker(q, 1)
			calls := 0
			w.Handle("ok", func(context.Context, Task) error {
				calls++
				return tt.handlerErr
			})

			task, _ := NewTask(tt.kind, nil)
			task.Attempt = tt.attempt
			w.Process(context.Background(), task)

			assert.Len(t, q.delayed, tt.wantDelayed)
			if tt.wantDelayed > 0 {
				assert.Equal(t, tt.attempt+1, q.delayed[0].Attempt)
				assert.Positive(t, q.delays[0])
			}
			if tt.kind == "ok" {
				assert.Equal(t, 1, calls)
			} else {
				assert.Zero(t, calls)
			}
		})
	}
}

func TestWorker_StartStops(t *testing.T) {
	_, client := setupTestRedis(t)
	q := NewRedisQueue(client, "tasks")
	w := NewWorker(q, 2)
	w.pollTimeout = time.Second

	done := make(chan string, 1)
	w.Handle("ping", func(_ context.Context, task Task) error {
		done <- task.ID
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	task, _ := NewTask("ping", nil)
	require.NoError(t, q.Enqueue(context.Background(), task))

	select {
	case id := <-done:
		assert.Equal(t, task.ID, id)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not processed")
	}

	cancel()
	w.Wait()
}
