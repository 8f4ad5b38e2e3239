package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/observability"
)

// SearchAnalyticsService is the fire-and-forget analytics sink. An
// analytics failure is never allowed to fail or slow a search.
type SearchAnalyticsService struct {
	repo repositories.SearchAnalyticsRepository
}

// NewSearchAnalyticsService creates a new search analytics service
func NewSearchAnalyticsService(repo repositories.SearchAnalyticsRepository) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo}
}

// Track records an event in the background and returns its assigned ID
// immediately. The write runs on a fresh context since the request
// context may be cancelled before it lands; failures are logged and
// swallowed.
func (s *SearchAnalyticsService) Track(ctx context.Context, event *entities.SearchEvent) string {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	logger := observability.LoggerFromContext(ctx)

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(bgCtx, event); err != nil {
			logger.Warn().Err(err).
				Str("event_id", event.ID).
				Str("action", string(event.Action)).
				Msg("failed to log search event")
		}
	}()

	return event.ID
}

// GetZeroResultQueries returns the most frequent query texts that
// produced no results, for offline assortment review.
func (s *SearchAnalyticsService) GetZeroResultQueries(ctx context.Context, limit int) ([]*repositories.ZeroResultQuery, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetZeroResultQueries(ctx, limit)
}
