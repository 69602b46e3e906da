package dispatch

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	internal_errors "github.com/jobdeck-dev/jobdeck/internal/errors"
)

// Queue is the durable work queue the dispatcher consumes from. Delivery is
// at-least-once; no ordering between jobs is guaranteed.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) error
	// Dequeue blocks up to a short poll interval and returns (nil, nil)
	// when no job is available.
	Dequeue(ctx context.Context) (*Job, error)
	// MoveDue promotes delayed jobs whose time has come onto the ready list.
	MoveDue(ctx context.Context) (int, error)
}

const (
	readyKey   = "dispatch:ready"
	delayedKey = "dispatch:delayed"
)

// ErrQueueUnavailable is returned when redis cannot be reached. Callers must
// treat the triggering operation as failed and roll back provisional state.
var ErrQueueUnavailable = &internal_errors.ErrorWithStatusCode{
	Message:    "Failed to connect to task queue. Please try again.",
	StatusCode: http.StatusInternalServerError,
}

// RedisQueue keeps ready jobs on a list and delayed jobs on a sorted set
// scored by their due time.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	raw, err := job.Marshal()
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, readyKey, raw).Err(); err != nil {
		return ErrQueueUnavailable
	}
	return nil
}

func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) error {
	raw, err := job.Marshal()
	if err != nil {
		return err
	}
	due := float64(time.Now().Add(delay).UnixMilli())
	if err := q.client.ZAdd(ctx, delayedKey, redis.Z{Score: due, Member: raw}).Err(); err != nil {
		return ErrQueueUnavailable
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*Job, error) {
	res, err := q.client.BRPop(ctx, time.Second, readyKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPOP returns [key, value]
	job, err := UnmarshalJob([]byte(res[1]))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// moveDueScript atomically pops due members from the delayed set and pushes
// them onto the ready list, so a crash between the two steps cannot lose jobs.
var moveDueScript = redis.NewScript(`
local due = redis.call("ZRANGEBYSCORE", KEYS[1], "-inf", ARGV[1])
for _, raw in ipairs(due) do
  redis.call("ZREM", KEYS[1], raw)
  redis.call("LPUSH", KEYS[2], raw)
end
return #due
`)

func (q *RedisQueue) MoveDue(ctx context.Context) (int, error) {
	now := time.Now().UnixMilli()
	n, err := moveDueScript.Run(ctx, q.client, []string{delayedKey, readyKey}, now).Int()
	if err != nil {
		return 0, err
	}
	return n, nil
}
