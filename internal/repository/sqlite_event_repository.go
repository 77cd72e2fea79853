package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"events-api/internal/model"
	apperrors "events-api/pkg/app_errors"

	"github.com/jmoiron/sqlx"
)

// SQLiteEventRepository keeps events in a local sqlite file through sqlx.
type SQLiteEventRepository struct {
	db *sqlx.DB
}

func NewSQLiteEventRepository(db *sqlx.DB) EventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (event_name, starting_time, ending_time, image, discount_rate, discount_rules, price)
		VALUES (:event_name, :starting_time, :ending_time, :image, :discount_rate, :discount_rules, :price)
	`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *event
	created.ID = int(id)
	return &created, nil
}

func (r *SQLiteEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	err := r.db.SelectContext(ctx, &events, `SELECT `+eventColumns+` FROM events ORDER BY idevents`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for _, event := range events {
		normalizeTimes(event)
	}
	return events, nil
}

func (r *SQLiteEventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	var event model.Event
	err := r.db.GetContext(ctx, &event, `SELECT `+eventColumns+` FROM events WHERE idevents = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	normalizeTimes(&event)
	return &event, nil
}

func (r *SQLiteEventRepository) Update(ctx context.Context, id int, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE events
		SET event_name = :event_name,
			starting_time = :starting_time,
			ending_time = :ending_time,
			image = :image,
			discount_rate = :discount_rate,
			discount_rules = :discount_rules,
			price = :price
		WHERE idevents = :idevents
	`
	params := *event
	params.ID = id

	res, err := r.db.NamedExecContext(ctx, query, &params)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	if affected == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return &params, nil
}

func (r *SQLiteEventRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE idevents = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *SQLiteEventRepository) CountByID(ctx context.Context, id int) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM events WHERE idevents = ?`, id); err != nil {
		return 0, fmt.Errorf("count event %d: %w", id, err)
	}
	return count, nil
}

func normalizeTimes(event *model.Event) {
	event.StartingTime = event.StartingTime.UTC()
	event.EndingTime = event.EndingTime.UTC()
}
