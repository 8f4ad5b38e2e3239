package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/machparts/partsearch/internal/domain/entities"
	"github.com/machparts/partsearch/internal/domain/repositories"
	"github.com/machparts/partsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/machparts/partsearch/pkg/errors"
)

// SavedSearchAdapter implements SavedSearchRepository against Postgres.
type SavedSearchAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSavedSearchAdapter creates a new saved search adapter
func NewSavedSearchAdapter(client *postgres.Client) repositories.SavedSearchRepository {
	return &SavedSearchAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a saved search. The query snapshot lands in a jsonb
// column as-is.
func (a *SavedSearchAdapter) Create(ctx context.Context, search *entities.SavedSearch) error {
	if search.ID == "" {
		search.ID = uuid.New().String()
	}
	if search.CreatedAt.IsZero() {
		search.CreatedAt = time.Now().UTC()
	}

	query, args, err := a.db.Insert("saved_searches").
		Rows(goqu.Record{
			"id":          search.ID,
			"customer_id": search.CustomerID,
			"name":        search.Name,
			"query":       []byte(search.Query),
			"created_at":  search.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build saved search insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewUpstreamError("failed to create saved search", err)
	}

	return nil
}

// Delete removes a saved search owned by the customer. Deleting a
// search that does not exist, or that belongs to someone else, is a
// NotFound error.
func (a *SavedSearchAdapter) Delete(ctx context.Context, customerID, id string) error {
	query, args, err := a.db.Delete("saved_searches").
		Where(goqu.Ex{
			"id":          id,
			"customer_id": customerID,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build saved search delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewUpstreamError("failed to delete saved search", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read delete result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("saved search %s not found", id))
	}

	return nil
}

// ListByCustomer returns a customer's saved searches, newest first.
func (a *SavedSearchAdapter) ListByCustomer(ctx context.Context, customerID string) ([]*entities.SavedSearch, error) {
	query, args, err := a.db.Select("id", "customer_id", "name", "query", "created_at").
		From("saved_searches").
		Where(goqu.Ex{"customer_id": customerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build saved searches query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to list saved searches", err)
	}
	defer rows.Close()

	searches := []*entities.SavedSearch{}
	for rows.Next() {
		s := &entities.SavedSearch{}
		var rawQuery []byte
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.Name, &rawQuery, &s.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan saved search", err)
		}
		s.Query = rawQuery
		searches = append(searches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewUpstreamError("error iterating saved searches", err)
	}

	return searches, nil
}
