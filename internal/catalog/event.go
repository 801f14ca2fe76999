package catalog

import "time"

const EventCatalogSeeded = "CatalogSeeded"

// SeededEvent is published once a seed run has committed its rows.
type SeededEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RunID     string    `json:"run_id"`
	Count     int64     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}
