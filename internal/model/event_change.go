package model

import "time"

type EventChangeType string

const (
	EventChangeCreated EventChangeType = "created"
	EventChangeUpdated EventChangeType = "updated"
	EventChangeDeleted EventChangeType = "deleted"
)

// EventChange is published after every committed write to the events table.
type EventChange struct {
	Type       EventChangeType `json:"type"`
	EventID    int             `json:"idevents"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewEventChange(changeType EventChangeType, eventID int) *EventChange {
	return &EventChange{
		Type:       changeType,
		EventID:    eventID,
		OccurredAt: time.Now().UTC(),
	}
}
