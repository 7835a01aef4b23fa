package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/queue"
)

// setupRedis starts a Redis container and returns a connected client.
func setupRedis(t *testing.T) *redis.Client {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", host, port.Int())})
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })

	return client
}

// waitForState polls a job until it reaches the wanted state or times out.
func waitForState(t *testing.T, q *queue.Queue, jobID, state string) *queue.JobView {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		view, err := q.GetJob(context.Background(), jobID)
		require.NoError(t, err)
		if view != nil && view.State == state {
			return view
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("job %s never reached state %s", jobID, state)
	return nil
}

func TestQueue_EnqueueAndGetJob(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test"})
	ctx := context.Background()

	jobID, err := q.Enqueue(ctx, "deposit", "tok-1", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", jobID)

	view, err := q.GetJob(ctx, "tok-1")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "tok-1", view.ID)
	assert.Equal(t, "deposit", view.Type)
	assert.Equal(t, queue.StateWaiting, view.State)
	assert.Equal(t, 0, view.AttemptsMade)
}

func TestQueue_GetJob_Unknown(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test"})

	view, err := q.GetJob(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestQueue_Enqueue_GeneratesID(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test"})

	jobID, err := q.Enqueue(context.Background(), "export", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, jobID)
}

func TestQueue_Enqueue_DeduplicatesByID(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test"})
	ctx := context.Background()

	first, err := q.Enqueue(ctx, "deposit", "tok-dup", map[string]string{"n": "1"})
	require.NoError(t, err)
	second, err := q.Enqueue(ctx, "deposit", "tok-dup", map[string]string{"n": "2"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The second call must not add another waiting entry.
	waiting, err := client.LLen(ctx, "queue:test:waiting").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), waiting)
}

func TestQueue_Enqueue_ConcurrentSameID(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test"})
	ctx := context.Background()

	const submitters = 10
	var wg sync.WaitGroup
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := q.Enqueue(ctx, "deposit", "tok-race", map[string]int{"n": i})
			assert.NoError(t, err)
			assert.Equal(t, "tok-race", id)
		}(i)
	}
	wg.Wait()

	// Creation is atomic: exactly one waiting entry and a fully formed hash,
	// never a half-written job another submission could observe.
	waiting, err := client.LLen(ctx, "queue:test:waiting").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), waiting)

	view, err := q.GetJob(ctx, "tok-race")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, queue.StateWaiting, view.State)
	assert.Equal(t, "deposit", view.Type)
}

func TestQueue_Run_ReclaimsStalledJob(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{
		Name:        "test",
		Concurrency: 1,
		Lease:       time.Second,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := q.Enqueue(context.Background(), "deposit", "tok-stall", map[string]string{"msg": "hi"})
	require.NoError(t, err)

	// Simulate a worker that claimed the job and died: the ID sits on the
	// active list with an expired lease and no outcome recorded.
	_, err = client.LMove(context.Background(), "queue:test:waiting", "queue:test:active", "RIGHT", "LEFT").Result()
	require.NoError(t, err)
	require.NoError(t, client.HSet(context.Background(), "queue:test:job:tok-stall",
		"state", queue.StateActive,
		"lease_until", time.Now().Add(-time.Minute).UnixMilli(),
	).Err())

	go q.Run(ctx, func(_ context.Context, job *queue.Job) (any, error) {
		return "recovered", nil
	})

	view := waitForState(t, q, "tok-stall", queue.StateCompleted)
	assert.Contains(t, view.Result, "recovered")

	// The reclaimed job must not linger on the active list.
	active, err := client.LLen(context.Background(), "queue:test:active").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)
}

func TestQueue_Run_CompletesJob(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{Name: "test", Concurrency: 2})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		q.Run(ctx, func(_ context.Context, job *queue.Job) (any, error) {
			var payload map[string]string
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return nil, err
			}
			return map[string]string{"echo": payload["msg"]}, nil
		})
		close(done)
	}()

	_, err := q.Enqueue(context.Background(), "deposit", "tok-run", map[string]string{"msg": "hello"})
	require.NoError(t, err)

	view := waitForState(t, q, "tok-run", queue.StateCompleted)
	assert.Equal(t, 1, view.AttemptsMade)
	assert.Contains(t, view.Result, "hello")
	assert.Empty(t, view.FailureReason)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not stop after cancellation")
	}
}

func TestQueue_Run_RetriesUntilExhausted(t *testing.T) {
	client := setupRedis(t)
	q := queue.New(client, queue.Config{
		Name:        "test",
		Concurrency: 1,
		MaxAttempts: 2,
		Backoff:     50 * time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go q.Run(ctx, func(_ context.Context, _ *queue.Job) (any, error) {
		return nil, errors.New("transient failure")
	})

	_, err := q.Enqueue(context.Background(), "withdraw", "tok-retry", nil)
	require.NoError(t, err)

	view := waitForState(t, q, "tok-retry", queue.StateFailed)
	assert.Equal(t, 2, view.AttemptsMade)
	assert.Equal(t, "transient failure", view.FailureReason)
}

func TestQueue_Run_TerminalErrorSkipsRetry(t *testing.T) {
	client := setupRedis(t)
	terminal := errors.New("bad request")
	q := queue.New(client, queue.Config{
		Name:        "test",
		Concurrency: 1,
		MaxAttempts: 3,
		Backoff:     50 * time.Millisecond,
		Retryable:   func(err error) bool { return !errors.Is(err, terminal) },
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go q.Run(ctx, func(_ context.Context, _ *queue.Job) (any, error) {
		return nil, terminal
	})

	_, err := q.Enqueue(context.Background(), "transfer", "tok-term", nil)
	require.NoError(t, err)

	view := waitForState(t, q, "tok-term", queue.StateFailed)
	assert.Equal(t, 1, view.AttemptsMade)
	assert.Equal(t, "bad request", view.FailureReason)
}
