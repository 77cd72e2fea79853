package service

import (
	"context"
	"errors"

	"events-api/internal/cache"
	"events-api/internal/model"
	"events-api/internal/queue"
	"events-api/internal/repository"
	apperrors "events-api/pkg/app_errors"
	"events-api/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, id int, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	CountByID(ctx context.Context, id int) (int, error)
	// SyncCache brings the cached copy of one event in line with the store.
	SyncCache(ctx context.Context, change *model.EventChange) error
}

type EventServiceImpl struct {
	repo    repository.EventRepository
	cache   cache.EventCache
	changes queue.EventChangeQueue
	log     *zap.Logger
}

func NewEventService(repo repository.EventRepository, cache cache.EventCache, changes queue.EventChangeQueue) EventService {
	return &EventServiceImpl{
		repo:    repo,
		cache:   cache,
		changes: changes,
		log:     logger.WithComponent("service"),
	}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// GetByID reads through the cache. Cache failures are logged and fall back
// to the store; they never fail the request.
func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	event, err := s.cache.Get(ctx, id)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		s.log.Warn("cache get failed", zap.Int("idevents", id), zap.Error(err))
	}

	event, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cache.IsNoop(s.cache) {
		return event, nil
	}
	if err := s.cache.Set(ctx, event); err != nil {
		s.log.Warn("cache set failed", zap.Int("idevents", id), zap.Error(err))
		return event, nil
	}
	s.evictIfDeleted(ctx, id)
	return event, nil
}

// evictIfDeleted drops an entry just filled from a row that a concurrent
// delete removed after it was read.
func (s *EventServiceImpl) evictIfDeleted(ctx context.Context, id int) {
	count, err := s.repo.CountByID(ctx, id)
	if err != nil {
		s.log.Warn("cache fill recheck failed", zap.Int("idevents", id), zap.Error(err))
		return
	}
	if count == 0 {
		s.invalidate(ctx, id)
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventChangeCreated, created.ID)
	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, event *model.Event) (*model.Event, error) {
	updated, err := s.repo.Update(ctx, id, event)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, model.EventChangeUpdated, id)
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, model.EventChangeDeleted, id)
	return nil
}

func (s *EventServiceImpl) CountByID(ctx context.Context, id int) (int, error) {
	return s.repo.CountByID(ctx, id)
}

func (s *EventServiceImpl) SyncCache(ctx context.Context, change *model.EventChange) error {
	switch change.Type {
	case model.EventChangeCreated, model.EventChangeUpdated:
		event, err := s.repo.FindByID(ctx, change.EventID)
		if errors.Is(err, apperrors.ErrEventNotFound) {
			// deleted after the change was published
			return s.cache.Invalidate(ctx, change.EventID)
		}
		if err != nil {
			return err
		}
		return s.cache.Set(ctx, event)
	case model.EventChangeDeleted:
		return s.cache.Invalidate(ctx, change.EventID)
	default:
		s.log.Warn("unknown change type", zap.String("type", string(change.Type)), zap.Int("idevents", change.EventID))
		return nil
	}
}

// The write is already committed when these run, so failures are only logged.
func (s *EventServiceImpl) invalidate(ctx context.Context, id int) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Error("cache invalidate failed", zap.Int("idevents", id), zap.Error(err))
	}
}

func (s *EventServiceImpl) publish(ctx context.Context, changeType model.EventChangeType, id int) {
	if err := s.changes.Publish(ctx, model.NewEventChange(changeType, id)); err != nil {
		s.log.Error("publish change failed", zap.String("type", string(changeType)), zap.Int("idevents", id), zap.Error(err))
	}
}
