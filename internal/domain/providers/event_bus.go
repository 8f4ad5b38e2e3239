package providers

import (
	"context"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// taxonomy change events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.TaxonomyEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.TaxonomyEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelTaxonomyUpdates carries reload notifications from the
	// external curation process.
	EventChannelTaxonomyUpdates = "taxonomy:updates"
)
