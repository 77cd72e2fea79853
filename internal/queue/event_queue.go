package queue

import (
	"context"

	"events-api/internal/model"
	apperrors "events-api/pkg/app_errors"
)

type Delivery struct {
	Data *model.EventChange
	Ack  func()
	Nack func(requeue bool)
}

type EventChangeQueue interface {
	// Publish never blocks on a slow consumer.
	Publish(ctx context.Context, change *model.EventChange) error
	// Subscribe returns a channel that is closed once ctx is done.
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

const defaultMaxAttempts = 5

type envelope struct {
	change   *model.EventChange
	attempts int
}

// EventChangeQueueImpl is an in-process queue for a single instance.
type EventChangeQueueImpl struct {
	ch          chan envelope
	maxAttempts int
}

func NewEventChangeQueue(bufferSize int) EventChangeQueue {
	return &EventChangeQueueImpl{
		ch:          make(chan envelope, bufferSize),
		maxAttempts: defaultMaxAttempts,
	}
}

func (q *EventChangeQueueImpl) Publish(ctx context.Context, change *model.EventChange) error {
	return q.offer(envelope{change: change})
}

func (q *EventChangeQueueImpl) offer(e envelope) error {
	select {
	case q.ch <- e:
		return nil
	default:
		return apperrors.ErrQueueFull
	}
}

func (q *EventChangeQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-q.ch:
				d := Delivery{
					Data: e.change,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if !requeue || e.attempts+1 >= q.maxAttempts {
							return
						}
						_ = q.offer(envelope{change: e.change, attempts: e.attempts + 1})
					},
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// NoopEventChangeQueue drops every change. It pairs with the no-op cache,
// where there is nothing for a worker to sync.
type NoopEventChangeQueue struct{}

func NewNoopEventChangeQueue() EventChangeQueue {
	return NoopEventChangeQueue{}
}

func (NoopEventChangeQueue) Publish(ctx context.Context, change *model.EventChange) error {
	return nil
}

func (NoopEventChangeQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out, nil
}
