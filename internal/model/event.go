package model

import (
	"encoding/json"
	"time"
)

// TimeLayout is the wire format of starting_time and ending_time.
const TimeLayout = "2006-01-02 15:04:05"

type Event struct {
	ID            int       `json:"idevents" db:"idevents"`
	EventName     string    `json:"event_name" db:"event_name"`
	StartingTime  time.Time `json:"starting_time" db:"starting_time"`
	EndingTime    time.Time `json:"ending_time" db:"ending_time"`
	Image         string    `json:"image" db:"image"`
	DiscountRate  int       `json:"discount_rate" db:"discount_rate"`
	DiscountRules int       `json:"discount_rules" db:"discount_rules"`
	Price         int       `json:"price" db:"price"`
}

type eventAlias Event

type eventJSON struct {
	eventAlias
	StartingTime string `json:"starting_time"`
	EndingTime   string `json:"ending_time"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		eventAlias:   eventAlias(e),
		StartingTime: FormatTime(e.StartingTime),
		EndingTime:   FormatTime(e.EndingTime),
	})
}

// ParseTime parses a wire timestamp as UTC.
func ParseTime(value string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, value, time.UTC)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
