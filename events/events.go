// Package events announces changes made to the resource collections.
package events

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Action is the kind of change an Event reports.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one successful mutation of a record.
type Event struct {
	ID       uuid.UUID       `json:"id"`
	Resource string          `json:"resource"`
	Action   Action          `json:"action"`
	RecordID int             `json:"recordId"`
	Record   json.RawMessage `json:"record,omitempty"`
	Time     time.Time       `json:"time"`
}

// NewEvent stamps an event for record. A nil record (deletes) leaves Record empty.
func NewEvent(resource string, action Action, recordID int, record any) (Event, error) {
	event := Event{
		ID:       uuid.New(),
		Resource: resource,
		Action:   action,
		RecordID: recordID,
		Time:     time.Now().UTC(),
	}
	if record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			return Event{}, fmt.Errorf("failed to encode %s record: %w", resource, err)
		}
		event.Record = raw
	}
	return event, nil
}

// Key is the Kafka message key, "<resource>:<id>".
func (e Event) Key() string {
	return fmt.Sprintf("%s:%d", e.Resource, e.RecordID)
}

// Publisher delivers change events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error { return nil }
