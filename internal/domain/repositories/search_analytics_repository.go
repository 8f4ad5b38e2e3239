package repositories

import (
	"context"
	"time"

	"github.com/machparts/partsearch/internal/domain/entities"
)

// ZeroResultQuery is an aggregated view of a query text that produced
// no results: how often, and when it was last seen.
type ZeroResultQuery struct {
	QueryText   string    `json:"query_text" db:"query_text"`
	Occurrences int       `json:"occurrences" db:"occurrences"`
	LastSeen    time.Time `json:"last_seen" db:"last_seen"`
}

// SearchAnalyticsRepository is the write-side of the analytics sink
// plus the one offline-tuning read the admin endpoint exposes.
type SearchAnalyticsRepository interface {
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
	GetZeroResultQueries(ctx context.Context, limit int) ([]*ZeroResultQuery, error)
}
