package repository

import (
	"context"
	"errors"
	"fmt"

	"events-api/internal/model"
	apperrors "events-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	// Update overwrites every business field of the event with the given id.
	Update(ctx context.Context, id int, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	// CountByID returns 1 when the event exists, 0 otherwise.
	CountByID(ctx context.Context, id int) (int, error)
}

const eventColumns = `idevents, event_name, starting_time, ending_time, image, discount_rate, discount_rules, price`

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventName,
		&event.StartingTime,
		&event.EndingTime,
		&event.Image,
		&event.DiscountRate,
		&event.DiscountRules,
		&event.Price,
	)
	if err != nil {
		return nil, err
	}
	event.StartingTime = event.StartingTime.UTC()
	event.EndingTime = event.EndingTime.UTC()
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (event_name, starting_time, ending_time, image, discount_rate, discount_rules, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.EventName,
		event.StartingTime,
		event.EndingTime,
		event.Image,
		event.DiscountRate,
		event.DiscountRules,
		event.Price,
	))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY idevents`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE idevents = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE events
		SET event_name = $1,
			starting_time = $2,
			ending_time = $3,
			image = $4,
			discount_rate = $5,
			discount_rules = $6,
			price = $7
		WHERE idevents = $8
		RETURNING ` + eventColumns

	updated, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.EventName,
		event.StartingTime,
		event.EndingTime,
		event.Image,
		event.DiscountRate,
		event.DiscountRules,
		event.Price,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	return updated, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE idevents = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) CountByID(ctx context.Context, id int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE idevents = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count event %d: %w", id, err)
	}
	return count, nil
}
