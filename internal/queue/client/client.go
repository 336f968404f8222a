package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aetherdigital/backend/internal/queue/task"

	"github.com/hibiken/asynq"
)

type ctxKey int

const (
	_ ctxKey = iota
	asyncQCtxKey
)

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

var ErrNoClient = errors.New("asynq client is not configured")

// GetClient returns the Client stored in ctx, falling back to the global one set with
// SetClient. It's safe for concurrent use.
func GetClient(ctx context.Context) *asynq.Client {
	c := ctx.Value(asyncQCtxKey)
	if c != nil {
		client, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}

		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// WithClient returns a copy of ctx that carries client.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asyncQCtxKey, client)
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// VerificationQueue enqueues confirmation emails on the asynq client found by GetClient.
type VerificationQueue struct{}

func NewVerificationQueue() *VerificationQueue {
	return &VerificationQueue{}
}

func (q *VerificationQueue) EnqueueVerification(ctx context.Context, username string) error {
	c := GetClient(ctx)
	if c == nil {
		return ErrNoClient
	}

	t, err := task.NewSendVerificationTask(username)
	if err != nil {
		return err
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue %s failed: %w", task.SendVerificationTaskName, err)
	}

	return nil
}
