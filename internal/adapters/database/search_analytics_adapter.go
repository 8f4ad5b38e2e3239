package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// SearchAnalyticsAdapter implements SearchAnalyticsRepository against Postgres.
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent appends a search event. ID and timestamp are filled in
// when the caller leaves them zero.
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query, args, err := a.db.Insert("search_events").
		Rows(goqu.Record{
			"id":               event.ID,
			"action":           string(event.Action),
			"query_text":       event.QueryText,
			"machine_type_id":  event.MachineTypeID,
			"manufacturer_id":  event.ManufacturerID,
			"machine_model_id": event.MachineModelID,
			"symptom_id":       event.SymptomID,
			"category_id":      event.CategoryID,
			"results_count":    event.ResultsCount,
			"clicked_part_id":  event.ClickedPartID,
			"converted":        event.Converted,
			"session_id":       event.SessionID,
			"created_at":       event.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewUpstreamError("failed to log search event", err)
	}

	return nil
}

// GetZeroResultQueries returns the most frequent zero-result query
// texts, for assortment gap review.
func (a *SearchAnalyticsAdapter) GetZeroResultQueries(ctx context.Context, limit int) ([]*repositories.ZeroResultQuery, error) {
	query, args, err := a.db.Select(
		"query_text",
		goqu.COUNT("*").As("occurrences"),
		goqu.MAX("created_at").As("last_seen"),
	).From("search_events").
		Where(
			goqu.I("action").Eq(string(entities.ActionSearchExecuted)),
			goqu.I("results_count").Eq(0),
			goqu.I("query_text").Neq(""),
		).
		GroupBy("query_text").
		Order(goqu.I("occurrences").Desc(), goqu.I("last_seen").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build zero-result query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to get zero-result queries", err)
	}
	defer rows.Close()

	results := []*repositories.ZeroResultQuery{}
	for rows.Next() {
		zr := &repositories.ZeroResultQuery{}
		if err := rows.Scan(&zr.QueryText, &zr.Occurrences, &zr.LastSeen); err != nil {
			return nil, apperrors.NewInternalError("failed to scan zero-result query", err)
		}
		results = append(results, zr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating zero-result queries", err)
	}

	return results, nil
}
