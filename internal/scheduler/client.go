package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"tune_outbound_backend/platform/config"
)

const batchTaskTimeout = 30 * time.Minute

// Client enqueues pipeline tasks. A nil client silently drops enqueues
// so binaries can run without redis configured.
type Client struct {
	client *asynq.Client
	queue  string
}

// Enqueuer is the surface handlers use to hand work to the queue.
type Enqueuer interface {
	EnqueueAnalyzeBatch(ctx context.Context, payload AnalyzeBatchPayload) (string, error)
	EnqueueGenerateSequence(ctx context.Context, payload GenerateSequencePayload) (string, error)
}

// NewClient builds an asynq client from the redis URL in config.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{client: asynq.NewClient(opt), queue: queue}, nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueAnalyzeBatch queues a batch analysis and returns the task id.
func (c *Client) EnqueueAnalyzeBatch(ctx context.Context, payload AnalyzeBatchPayload) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("scheduler client not configured")
	}

	task, err := NewAnalyzeBatchTask(payload)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(batchTaskTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue analyze batch: %w", err)
	}
	return info.ID, nil
}

// EnqueueGenerateSequence queues sequence generation for a prospect.
func (c *Client) EnqueueGenerateSequence(ctx context.Context, payload GenerateSequencePayload) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("scheduler client not configured")
	}

	task, err := NewGenerateSequenceTask(payload)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue generate sequence: %w", err)
	}
	return info.ID, nil
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
