package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"actividad-clase/api-service/events"
	"actividad-clase/api-service/logging"
	"actividad-clase/api-service/storage"
)

var ErrNotFound = errors.New("record not found")

// Record is a stored entity identified by an integer id.
type Record interface {
	RecordID() int
}

// Patch is the partial update a client sends: it can build a new record or
// be applied over an existing one.
type Patch[T Record] interface {
	NewRecord(id int) T
	ApplyTo(existing T) T
}

// ResourceService implements list/get/create/update/delete over one
// collection. Every call reloads the collection from storage; mutating calls
// hold mu for their whole read-modify-write cycle.
type ResourceService[T Record, P Patch[T]] struct {
	collection storage.Collection[T]
	publisher  events.Publisher
	mu         sync.Mutex
}

// NewResourceService serves collection; a nil publisher disables change events.
func NewResourceService[T Record, P Patch[T]](collection storage.Collection[T], publisher events.Publisher) *ResourceService[T, P] {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ResourceService[T, P]{collection: collection, publisher: publisher}
}

func (s *ResourceService[T, P]) Name() string { return s.collection.Name() }

// List returns the whole collection in stored order.
func (s *ResourceService[T, P]) List(ctx context.Context) ([]T, error) {
	records, err := s.collection.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s: %w", s.Name(), err)
	}
	return records, nil
}

// Get returns ErrNotFound when no record has id.
func (s *ResourceService[T, P]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	records, err := s.List(ctx)
	if err != nil {
		return zero, err
	}
	index := indexOf(records, id)
	if index == -1 {
		return zero, ErrNotFound
	}
	return records[index], nil
}

// Create stores a record built from fields under max(existing ids)+1.
func (s *ResourceService[T, P]) Create(ctx context.Context, fields P) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	records, err := s.List(ctx)
	if err != nil {
		return zero, err
	}

	record := fields.NewRecord(nextID(records))
	records = append(records, record)
	if err := s.collection.WriteAll(ctx, records); err != nil {
		return zero, fmt.Errorf("failed to create %s record: %w", s.Name(), err)
	}

	s.publish(ctx, events.ActionCreated, record.RecordID(), record)
	return record, nil
}

// Update applies fields over record id; fields left nil keep their value.
func (s *ResourceService[T, P]) Update(ctx context.Context, id int, fields P) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	records, err := s.List(ctx)
	if err != nil {
		return zero, err
	}
	index := indexOf(records, id)
	if index == -1 {
		return zero, ErrNotFound
	}

	updated := fields.ApplyTo(records[index])
	records[index] = updated
	if err := s.collection.WriteAll(ctx, records); err != nil {
		return zero, fmt.Errorf("failed to update %s record %d: %w", s.Name(), id, err)
	}

	s.publish(ctx, events.ActionUpdated, id, updated)
	return updated, nil
}

// Delete removes record id or returns ErrNotFound.
func (s *ResourceService[T, P]) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.List(ctx)
	if err != nil {
		return err
	}

	remaining := make([]T, 0, len(records))
	for _, record := range records {
		if record.RecordID() != id {
			remaining = append(remaining, record)
		}
	}
	if len(remaining) == len(records) {
		return ErrNotFound
	}

	if err := s.collection.WriteAll(ctx, remaining); err != nil {
		return fmt.Errorf("failed to delete %s record %d: %w", s.Name(), id, err)
	}

	s.publish(ctx, events.ActionDeleted, id, nil)
	return nil
}

// publish never fails the request; the change is already persisted.
func (s *ResourceService[T, P]) publish(ctx context.Context, action events.Action, id int, record any) {
	event, err := events.NewEvent(s.Name(), action, id, record)
	if err == nil {
		err = s.publisher.Publish(ctx, event)
	}
	if err != nil {
		logging.Logger.Warnf("Event ID: CHANGE_EVENT_FAILED, Description: Failed to publish %s event for %s/%d: %v", action, s.Name(), id, err)
	}
}

func indexOf[T Record](records []T, id int) int {
	for i, record := range records {
		if record.RecordID() == id {
			return i
		}
	}
	return -1
}

func nextID[T Record](records []T) int {
	if len(records) == 0 {
		return 1
	}
	maxID := records[0].RecordID()
	for _, record := range records[1:] {
		if id := record.RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
