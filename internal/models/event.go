package models

import (
	"encoding/json"
	"time"
)

// EventType categorizes task list events.
type EventType string

const (
	EventTypeTaskAdded    EventType = "task.added"
	EventTypeTaskToggled  EventType = "task.toggled"
	EventTypeTaskEdited   EventType = "task.edited"
	EventTypeTaskRemoved  EventType = "task.removed"
	EventTypeTaskCleared  EventType = "task.cleared"
	EventTypeTaskImported EventType = "task.imported"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeTask EntityType = "task"
	EntityTypeList EntityType = "list"
)

// ListEntityID is the entity id used for events that touch the whole list.
const ListEntityID = "todos"

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TaskPayload is the payload for single-task events.
type TaskPayload struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// BulkPayload is the payload for task.cleared and task.imported events.
type BulkPayload struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids,omitempty"`
}
