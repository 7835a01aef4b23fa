package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
)

// Job states
const (
	StateWaiting   = "waiting"
	StateDelayed   = "delayed"
	StateActive    = "active"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Job is the unit of work handed to a Handler. Payload is the JSON body
// supplied at enqueue time; AttemptsMade counts this delivery.
type Job struct {
	ID           string
	Type         string
	Payload      []byte
	AttemptsMade int
}

// JobView is the queryable state of a job. Result and FailureReason stay
// readable after the job reaches a terminal state.
type JobView struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	State         string `json:"state"`
	AttemptsMade  int    `json:"attempts_made"`
	Result        string `json:"result,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Handler processes one delivered job and returns its result. Delivery is
// at-least-once: a handler may see the same job again after a crash, so it
// must be idempotent.
type Handler func(ctx context.Context, job *Job) (result any, err error)

// Config controls queue behaviour.
type Config struct {
	Name        string
	Concurrency int
	MaxAttempts int
	Backoff     time.Duration
	// Lease bounds how long a delivered job may sit in the active list
	// before another worker may reclaim it as stalled.
	Lease time.Duration
	// Retryable classifies handler errors. A nil classifier retries
	// everything up to MaxAttempts.
	Retryable func(error) bool
}

// Queue is a durable at-least-once job queue over Redis. Waiting jobs sit
// in a list, claimed jobs move to an active list under a lease, delayed
// retries go to a sorted set scored by ready time, and each job's state
// lives in its own hash keyed by job ID. Jobs left on the active list past
// their lease are re-queued, so a worker crash never strands a job.
type Queue struct {
	client *redis.Client
	cfg    Config
}

// New creates a Queue. Zero config fields fall back to sane defaults.
func New(client *redis.Client, cfg Config) *Queue {
	if cfg.Name == "" {
		cfg.Name = "ledger"
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 3 * time.Second
	}
	if cfg.Lease <= 0 {
		cfg.Lease = 30 * time.Second
	}
	return &Queue{client: client, cfg: cfg}
}

func (q *Queue) waitingKey() string { return fmt.Sprintf("queue:%s:waiting", q.cfg.Name) }
func (q *Queue) activeKey() string  { return fmt.Sprintf("queue:%s:active", q.cfg.Name) }
func (q *Queue) delayedKey() string { return fmt.Sprintf("queue:%s:delayed", q.cfg.Name) }
func (q *Queue) jobKey(id string) string {
	return fmt.Sprintf("queue:%s:job:%s", q.cfg.Name, id)
}

// enqueueScript creates the job hash and pushes the ID onto the waiting list
// in one atomic step, so a job is never visible half-created. Returns 0 when
// the ID already exists.
var enqueueScript = redis.NewScript(`
if redis.call("HSETNX", KEYS[1], "id", ARGV[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1],
	"type", ARGV[2],
	"payload", ARGV[3],
	"state", ARGV[4],
	"attempts_made", 0,
	"max_attempts", ARGV[5],
	"created_at", ARGV[6])
redis.call("LPUSH", KEYS[2], ARGV[1])
return 1
`)

// Enqueue stores a job and pushes it onto the waiting list. When jobID is
// empty a random one is generated. Enqueueing an ID that already exists is
// a no-op returning the existing ID, which gives queue-level deduplication
// when callers use the idempotency token as the job ID.
func (q *Queue) Enqueue(ctx context.Context, jobType, jobID string, payload any) (string, error) {
	if jobID == "" {
		jobID = uuid.NewString()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	created, err := enqueueScript.Run(ctx, q.client,
		[]string{q.jobKey(jobID), q.waitingKey()},
		jobID, jobType, data, StateWaiting, q.cfg.MaxAttempts, time.Now().UnixMilli(),
	).Int()
	if err != nil {
		return "", err
	}
	if created == 0 {
		logger.Log.Infow("job already enqueued", "job_id", jobID, "type", jobType)
		return jobID, nil
	}

	logger.Log.Infow("job enqueued", "job_id", jobID, "type", jobType)
	return jobID, nil
}

// GetJob returns the current view of a job. Returns nil if the job is unknown.
func (q *Queue) GetJob(ctx context.Context, jobID string) (*JobView, error) {
	fields, err := q.client.HGetAll(ctx, q.jobKey(jobID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	attempts, _ := strconv.Atoi(fields["attempts_made"])
	return &JobView{
		ID:            fields["id"],
		Type:          fields["type"],
		State:         fields["state"],
		AttemptsMade:  attempts,
		Result:        fields["result"],
		FailureReason: fields["failure_reason"],
	}, nil
}

// Run starts the worker pool and blocks until ctx is cancelled. Jobs being
// processed when the context ends run to completion; only undelivered jobs
// stay behind in the waiting list.
func (q *Queue) Run(ctx context.Context, handler Handler) {
	var wg sync.WaitGroup
	for i := 0; i < q.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			q.work(ctx, worker, handler)
		}(i)
	}
	wg.Wait()
}

func (q *Queue) work(ctx context.Context, worker int, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := q.promoteDelayed(ctx); err != nil && ctx.Err() == nil {
			logger.Log.Errorw("failed to promote delayed jobs", "worker", worker, "error", err)
		}
		if err := q.reclaimStalled(ctx); err != nil && ctx.Err() == nil {
			logger.Log.Errorw("failed to reclaim stalled jobs", "worker", worker, "error", err)
		}

		// The move into the active list keeps the job reachable if this
		// process dies mid-flight; reclaimStalled re-queues it after the
		// lease runs out.
		jobID, err := q.client.BLMove(ctx, q.waitingKey(), q.activeKey(), "RIGHT", "LEFT", time.Second).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			logger.Log.Errorw("failed to pop job", "worker", worker, "error", err)
			time.Sleep(time.Second)
			continue
		}

		leaseUntil := time.Now().Add(q.cfg.Lease).UnixMilli()
		if err := q.client.HSet(ctx, q.jobKey(jobID), "lease_until", leaseUntil).Err(); err != nil {
			logger.Log.Errorw("failed to stamp job lease", "worker", worker, "job_id", jobID, "error", err)
		}

		q.process(ctx, jobID, handler)
	}
}

// reclaimStalled puts expired active jobs back on the waiting list. A job
// whose lease ran out belongs to a worker that died between claiming it and
// recording an outcome; re-queueing it is what makes delivery at-least-once.
func (q *Queue) reclaimStalled(ctx context.Context) error {
	ids, err := q.client.LRange(ctx, q.activeKey(), 0, -1).Result()
	if err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	for _, id := range ids {
		leaseStr, err := q.client.HGet(ctx, q.jobKey(id), "lease_until").Result()
		if err != nil && err != redis.Nil {
			return err
		}
		lease, _ := strconv.ParseInt(leaseStr, 10, 64)
		if lease > now {
			continue
		}
		removed, err := q.client.LRem(ctx, q.activeKey(), 1, id).Result()
		if err != nil {
			return err
		}
		if removed == 0 {
			continue // another worker reclaimed it first
		}
		pipe := q.client.TxPipeline()
		pipe.HSet(ctx, q.jobKey(id), "state", StateWaiting)
		pipe.LPush(ctx, q.waitingKey(), id)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		logger.Log.Warnw("stalled job reclaimed", "job_id", id)
	}
	return nil
}

// promoteDelayed moves due retries from the delayed set back to waiting.
func (q *Queue) promoteDelayed(ctx context.Context) error {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	ids, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf", Max: now, Count: 16,
	}).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		removed, err := q.client.ZRem(ctx, q.delayedKey(), id).Result()
		if err != nil {
			return err
		}
		if removed == 0 {
			continue // another worker promoted it first
		}
		pipe := q.client.TxPipeline()
		pipe.HSet(ctx, q.jobKey(id), "state", StateWaiting)
		pipe.LPush(ctx, q.waitingKey(), id)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) process(ctx context.Context, jobID string, handler Handler) {
	// A delivered job always runs to completion, even during shutdown.
	jobCtx := context.WithoutCancel(ctx)

	fields, err := q.client.HGetAll(jobCtx, q.jobKey(jobID)).Result()
	if err != nil || len(fields) == 0 {
		logger.Log.Errorw("failed to load job", "job_id", jobID, "error", err)
		return
	}

	attempts, err := q.client.HIncrBy(jobCtx, q.jobKey(jobID), "attempts_made", 1).Result()
	if err != nil {
		logger.Log.Errorw("failed to bump attempt count", "job_id", jobID, "error", err)
		return
	}
	if err := q.client.HSet(jobCtx, q.jobKey(jobID), "state", StateActive).Err(); err != nil {
		logger.Log.Errorw("failed to mark job active", "job_id", jobID, "error", err)
		return
	}

	job := &Job{
		ID:           jobID,
		Type:         fields["type"],
		Payload:      []byte(fields["payload"]),
		AttemptsMade: int(attempts),
	}

	result, handlerErr := handler(jobCtx, job)
	if handlerErr == nil {
		q.complete(jobCtx, job, result)
		return
	}
	q.fail(jobCtx, job, handlerErr)
}

func (q *Queue) complete(ctx context.Context, job *Job, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Log.Errorw("failed to marshal job result", "job_id", job.ID, "error", err)
		data = []byte("null")
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.jobKey(job.ID),
		"state", StateCompleted,
		"result", data,
		"failure_reason", "",
	)
	pipe.LRem(ctx, q.activeKey(), 1, job.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Errorw("failed to mark job completed", "job_id", job.ID, "error", err)
		return
	}

	logger.Log.Infow("job completed", "job_id", job.ID, "type", job.Type, "attempts", job.AttemptsMade)
}

func (q *Queue) fail(ctx context.Context, job *Job, handlerErr error) {
	retryable := q.cfg.Retryable == nil || q.cfg.Retryable(handlerErr)

	if retryable && job.AttemptsMade < q.cfg.MaxAttempts {
		readyAt := time.Now().Add(q.cfg.Backoff).UnixMilli()
		pipe := q.client.TxPipeline()
		pipe.HSet(ctx, q.jobKey(job.ID),
			"state", StateDelayed,
			"failure_reason", handlerErr.Error(),
		)
		pipe.ZAdd(ctx, q.delayedKey(), redis.Z{Score: float64(readyAt), Member: job.ID})
		pipe.LRem(ctx, q.activeKey(), 1, job.ID)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Log.Errorw("failed to schedule retry", "job_id", job.ID, "error", err)
			return
		}

		logger.Log.Warnw("job failed, retry scheduled",
			"job_id", job.ID,
			"type", job.Type,
			"attempts", job.AttemptsMade,
			"backoff", q.cfg.Backoff,
			"error", handlerErr,
		)
		return
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.jobKey(job.ID),
		"state", StateFailed,
		"failure_reason", handlerErr.Error(),
	)
	pipe.LRem(ctx, q.activeKey(), 1, job.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Errorw("failed to mark job failed", "job_id", job.ID, "error", err)
		return
	}

	logger.Log.Errorw("job terminally failed",
		"job_id", job.ID,
		"type", job.Type,
		"attempts", job.AttemptsMade,
		"error", handlerErr,
	)
}
