package entities

import (
	"time"
)

// TaxonomyEventType identifies the kind of taxonomy change event.
type TaxonomyEventType string

const (
	// TaxonomyUpdated is published by the external curation process
	// after it reloads any taxonomy dimension.
	TaxonomyUpdated TaxonomyEventType = "taxonomy.updated"
)

// TaxonomyEvent notifies running instances that taxonomy reference
// data changed, so cached snapshots can be dropped.
type TaxonomyEvent struct {
	ID         string            `json:"id"`
	Type       TaxonomyEventType `json:"type"`
	EntityKind string            `json:"entity_kind,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
