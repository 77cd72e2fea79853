package worker

import (
	"context"

	"events-api/internal/queue"
	"events-api/internal/service"
	"events-api/pkg/logger"

	"go.uber.org/zap"
)

type EventCacheWorker interface {
	// Start subscribes to the change queue and returns once the consumer
	// goroutine is running. Done is closed when it exits.
	Start(ctx context.Context) error
	Done() <-chan struct{}
}

type EventCacheWorkerImpl struct {
	service service.EventService
	queue   queue.EventChangeQueue
	done    chan struct{}
}

func NewEventCacheWorker(service service.EventService, queue queue.EventChangeQueue) EventCacheWorker {
	return &EventCacheWorkerImpl{
		service: service,
		queue:   queue,
		done:    make(chan struct{}),
	}
}

func (w *EventCacheWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		close(w.done)
		return err
	}

	log := logger.WithComponent("worker")
	go func() {
		defer close(w.done)
		for msg := range msgs {
			if err := w.service.SyncCache(ctx, msg.Data); err != nil {
				log.Warn("sync cache failed, requeue",
					zap.String("type", string(msg.Data.Type)),
					zap.Int("idevents", msg.Data.EventID),
					zap.Error(err),
				)
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *EventCacheWorkerImpl) Done() <-chan struct{} {
	return w.done
}
