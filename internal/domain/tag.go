package domain

import "context"

// Tag is a free-text label scoped to a single event. It has no existence
// outside its event; deleting the event deletes its tags. Duplicate names
// within an event are allowed.
// swagger:model Tag
type Tag struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
}

// TagRepository defines storage for event tags.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	// DeleteByEventAndID removes the tag only if it belongs to the given
	// event. Returns ErrNotFound otherwise.
	DeleteByEventAndID(ctx context.Context, eventID, tagID string) error
	ListByEventID(ctx context.Context, eventID string) ([]*Tag, error)
}
